package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/guilherme-santos/csvcalendar"
	"github.com/guilherme-santos/csvcalendar/calendar"
	"github.com/guilherme-santos/csvcalendar/calendar/google"
	"github.com/guilherme-santos/csvcalendar/calendar/mock"
	"github.com/guilherme-santos/csvcalendar/file"
	"github.com/guilherme-santos/csvcalendar/internal/logging"
	"github.com/guilherme-santos/csvcalendar/internal/sqlite"
)

type command interface {
	Run(ctx context.Context, cfg file.Config, w io.Writer, args []string) error
}

var commands = map[string]command{
	ImportCommand.Name:  ImportCommand,
	LoginCommand.Name:   LoginCommand,
	LogoutCommand.Name:  LogoutCommand,
	HistoryCommand.Name: HistoryCommand,
}

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Execution failed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var (
		cfgFile string
		envFile string
		verbose bool
	)

	flags := flag.NewFlagSet("csvcalendar", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		w := flags.Output()
		fmt.Fprintf(w, "Usage of %s [options] <command> [command options]:\n", flags.Name())
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Commands:")
		for _, c := range []struct{ name, desc string }{
			{ImportCommand.Name, ImportCommand.Description},
			{LoginCommand.Name, LoginCommand.Description},
			{LogoutCommand.Name, LogoutCommand.Description},
			{HistoryCommand.Name, HistoryCommand.Description},
		} {
			fmt.Fprintf(w, "  %-8s %s\n", c.name, c.desc)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		flags.PrintDefaults()
	}
	flags.StringVar(&cfgFile, "config", "config.yaml", "config file, defaults are used when it doesn't exist")
	flags.StringVar(&envFile, "env", ".env", "file with CSVCALENDAR_* variables to load")
	flags.BoolVar(&verbose, "verbose", false, "log debug messages")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := loadEnv(envFile); err != nil {
		return err
	}
	cfg, err := file.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logging.Setup(stderr, cfg.Log.Level, cfg.Log.Format)

	name := ImportCommand.Name
	cmdArgs := flags.Args()
	if len(cmdArgs) > 0 {
		name, cmdArgs = cmdArgs[0], cmdArgs[1:]
	}
	cmd, ok := commands[name]
	if !ok {
		flags.Usage()
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.Run(ctx, cfg, stdout, cmdArgs)
}

func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// newMux always offers the mock provider. The google one is only
// registered when its credentials could be loaded; otherwise the
// returned error explains why.
func newMux(cfg file.Config, obs csvcalendar.Observer) (*calendar.Mux, *google.Authenticator, error) {
	mux := calendar.NewMux()
	mux.Register(calendar.TypeMock, mock.New(cfg.Timezone, cfg.MockLatency))

	creds, err := file.LoadCredentials(cfg.CredentialsFile, cfg.DefaultRedirectURI())
	if err != nil {
		return mux, nil, &csvcalendar.ConfigurationError{Key: "credentials", Err: err}
	}

	googleCal, err := google.NewClient(creds, google.Config{
		Scopes:      cfg.Scopes,
		Timezone:    cfg.Timezone,
		TokenBuffer: cfg.TokenBuffer,
	})
	if err != nil {
		return mux, nil, err
	}
	mux.Register(calendar.TypeGoogle, googleCal)

	auth, err := newAuthenticator(cfg, creds, cfg.Scopes, obs)
	if err != nil {
		return mux, nil, err
	}
	return mux, auth, nil
}

func newAuthenticator(cfg file.Config, creds *csvcalendar.Credentials, scopes []string, obs csvcalendar.Observer) (*google.Authenticator, error) {
	tokens := file.NewTokenFile(cfg.TokenFile, cfg.TokenBuffer, obs)
	receiver := google.NewCallbackServer(creds.RedirectURI, cfg.CallbackPort)
	return google.NewAuthenticator(creds, scopes, tokens, receiver, obs)
}

func openHistory(path string) (*sqlite.Storage, func(), error) {
	db, err := sql.Open(sqlite.DriverName, path)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := db.Close(); err != nil {
			slog.Warn("closing history database", "error", err)
		}
	}
	return sqlite.NewStorage(db), closeFn, nil
}
