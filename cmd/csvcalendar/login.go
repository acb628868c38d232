package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/guilherme-santos/csvcalendar/file"
	"github.com/guilherme-santos/csvcalendar/internal/importer"
	"github.com/guilherme-santos/csvcalendar/internal/logging"
)

var LoginCommand = _loginCommand{
	Name:        "login",
	Description: "Give access to Google Calendar",
}

type _loginCommand struct {
	Name        string
	Description string
}

func (s _loginCommand) Run(ctx context.Context, cfg file.Config, w io.Writer, args []string) error {
	var (
		force  bool
		scopes Strings
	)

	fs := flag.NewFlagSet(s.Name, flag.ContinueOnError)
	fs.BoolVar(&force, "force", false, "authorize again even if the saved token is still valid")
	fs.Var(&scopes, "scope", "OAuth scope to request, can be repeated (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(scopes) == 0 {
		scopes = cfg.Scopes
	}

	creds, err := file.LoadCredentials(cfg.CredentialsFile, cfg.DefaultRedirectURI())
	if err != nil {
		return err
	}
	auth, err := newAuthenticator(cfg, creds, scopes, logging.NewObserver(slog.Default()))
	if err != nil {
		return err
	}
	auth.Prompt = func(authURL string) {
		fmt.Fprintf(w, "Go to the following link in your browser\n%s\n", authURL)
	}

	if force {
		_, err = auth.Authenticate(ctx)
	} else {
		_, err = importer.Authorize(ctx, auth)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Token saved to %s\n", cfg.TokenFile)
	return nil
}
