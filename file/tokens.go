package file

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/guilherme-santos/csvcalendar"
)

// TokenFile keeps the token record as a JSON file. Every save rewrites
// the whole file.
type TokenFile struct {
	path     string
	buffer   time.Duration
	observer csvcalendar.Observer

	// Now is used to check expiry, it's time.Now unless replaced.
	Now func() time.Time
}

func NewTokenFile(path string, buffer time.Duration, observer csvcalendar.Observer) *TokenFile {
	if buffer <= 0 {
		buffer = csvcalendar.DefaultTokenBuffer
	}
	return &TokenFile{
		path:     path,
		buffer:   buffer,
		observer: csvcalendar.ObserverOrNop(observer),
		Now:      time.Now,
	}
}

func (f *TokenFile) Path() string {
	return f.path
}

// Load returns nil when there's no token or it can't be read.
func (f *TokenFile) Load() *csvcalendar.Token {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var tok csvcalendar.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil
	}
	return &tok
}

func (f *TokenFile) Save(tok *csvcalendar.Token) bool {
	err := f.save(tok)
	f.observer.TokenSaved(f.path, err)
	return err == nil
}

func (f *TokenFile) save(tok *csvcalendar.Token) error {
	if tok == nil {
		return &csvcalendar.TokenError{Kind: "access", Err: errors.New("no token to save")}
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}

	record := csvcalendar.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Scope:        tok.Scope,
		TokenType:    tok.TokenType,
		ExpiryDate:   tok.ExpiryDate,
		Timestamp:    csvcalendar.FormatISO(f.Now()),
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *TokenFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Clear removes the token file, false means there was nothing removed.
func (f *TokenFile) Clear() bool {
	return os.Remove(f.path) == nil
}

func (f *TokenFile) IsExpired(tok *csvcalendar.Token) bool {
	return csvcalendar.IsTokenExpired(tok, f.Now(), f.buffer)
}

func (f *TokenFile) IsValid(tok *csvcalendar.Token) bool {
	return !f.IsExpired(tok)
}
