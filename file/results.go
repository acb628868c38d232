package file

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/guilherme-santos/csvcalendar"
)

// SaveResults overwrites path with results as an indented JSON array.
func SaveResults(path string, results []csvcalendar.Result) error {
	if results == nil {
		results = []csvcalendar.Result{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func LoadResults(path string) ([]csvcalendar.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []csvcalendar.Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}
