package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/guilherme-santos/csvcalendar"
)

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is built once at startup and handed to every component by value.
type Config struct {
	CSVFile         string `yaml:"csv_file"`
	OutputFile      string `yaml:"output_file"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	// HistoryDB enables the sqlite import history when set.
	HistoryDB string `yaml:"history_db"`
	// MetricsFile enables the prometheus textfile when set.
	MetricsFile string `yaml:"metrics_file"`

	CalendarID   string        `yaml:"calendar_id"`
	Timezone     string        `yaml:"timezone"`
	TokenBuffer  time.Duration `yaml:"token_buffer"`
	CallbackPort int           `yaml:"callback_port"`
	CallbackPath string        `yaml:"callback_path"`
	Scopes       []string      `yaml:"scopes"`
	MockLatency  time.Duration `yaml:"mock_latency"`

	Log LogConfig `yaml:"log"`
}

func DefaultConfig() Config {
	cfg := Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills every zero value with its default.
func (c *Config) Normalize() {
	if c.CSVFile == "" {
		c.CSVFile = "./data/eventos.csv"
	}
	if c.OutputFile == "" {
		c.OutputFile = "./output/results.json"
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = "./config/credentials.json"
	}
	if c.TokenFile == "" {
		c.TokenFile = "./config/tokens.json"
	}
	if c.CalendarID == "" {
		c.CalendarID = csvcalendar.DefaultCalendarID
	}
	if c.Timezone == "" {
		c.Timezone = csvcalendar.DefaultTimezone
	}
	if c.TokenBuffer <= 0 {
		c.TokenBuffer = csvcalendar.DefaultTokenBuffer
	}
	if c.CallbackPort <= 0 {
		c.CallbackPort = 3000
	}
	if c.CallbackPath == "" {
		c.CallbackPath = "/callback"
	}
	if len(c.Scopes) == 0 {
		c.Scopes = []string{
			"https://www.googleapis.com/auth/calendar",
			"https://www.googleapis.com/auth/calendar.events",
		}
	}
	// A negative latency disables the mock delay.
	if c.MockLatency == 0 {
		c.MockLatency = 100 * time.Millisecond
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// LoadConfig reads the YAML config at path. A missing file, or an empty
// path, gives the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, &csvcalendar.ConfigurationError{Key: path, Err: err}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &csvcalendar.ConfigurationError{Key: path, Err: err}
	}
	cfg.Normalize()
	return cfg, nil
}

const envPrefix = "CSVCALENDAR_"

// ApplyEnv overrides c with the CSVCALENDAR_* variables that are set.
func (c *Config) ApplyEnv() error {
	strs := map[string]*string{
		"CSV_FILE":         &c.CSVFile,
		"OUTPUT_FILE":      &c.OutputFile,
		"CREDENTIALS_FILE": &c.CredentialsFile,
		"TOKEN_FILE":       &c.TokenFile,
		"HISTORY_DB":       &c.HistoryDB,
		"METRICS_FILE":     &c.MetricsFile,
		"CALENDAR_ID":      &c.CalendarID,
		"TIMEZONE":         &c.Timezone,
		"CALLBACK_PATH":    &c.CallbackPath,
		"LOG_LEVEL":        &c.Log.Level,
		"LOG_FORMAT":       &c.Log.Format,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"TOKEN_BUFFER": &c.TokenBuffer,
		"MOCK_LATENCY": &c.MockLatency,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(envPrefix + name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return &csvcalendar.ConfigurationError{Key: envPrefix + name, Err: err}
		}
		*dst = d
	}

	if v, ok := os.LookupEnv(envPrefix + "CALLBACK_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &csvcalendar.ConfigurationError{Key: envPrefix + "CALLBACK_PORT", Err: err}
		}
		c.CallbackPort = port
	}

	c.Normalize()
	return nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, &csvcalendar.ConfigurationError{Key: "timezone", Err: err}
	}
	return loc, nil
}

// DefaultRedirectURI is used when the credentials don't carry one.
func (c Config) DefaultRedirectURI() string {
	return fmt.Sprintf("http://localhost:%d%s", c.CallbackPort, c.CallbackPath)
}
