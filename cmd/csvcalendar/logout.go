package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/guilherme-santos/csvcalendar/file"
	"github.com/guilherme-santos/csvcalendar/internal/logging"
)

var LogoutCommand = _logoutCommand{
	Name:        "logout",
	Description: "Remove the saved Google Calendar token",
}

type _logoutCommand struct {
	Name        string
	Description string
}

func (s _logoutCommand) Run(_ context.Context, cfg file.Config, w io.Writer, _ []string) error {
	tokens := file.NewTokenFile(cfg.TokenFile, cfg.TokenBuffer, logging.NewObserver(slog.Default()))
	if !tokens.Exists() {
		fmt.Fprintln(w, "No token saved")
		return nil
	}
	if !tokens.Clear() {
		return fmt.Errorf("unable to remove %s", tokens.Path())
	}
	fmt.Fprintf(w, "Token %s removed\n", tokens.Path())
	return nil
}
