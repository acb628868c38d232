package file

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/guilherme-santos/csvcalendar"
)

type clientSecrets struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURI  string   `json:"redirect_uri"`
	RedirectURIs []string `json:"redirect_uris"`
}

// LoadCredentials reads either the file downloaded from the Google Cloud
// console ({"web": {...}} or {"installed": {...}}) or a flat
// {client_id, client_secret, redirect_uri} object.
func LoadCredentials(path, defaultRedirectURI string) (*csvcalendar.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &csvcalendar.ConfigurationError{Key: path, Err: err}
	}
	creds, err := ParseCredentials(data, defaultRedirectURI)
	if err != nil {
		return nil, &csvcalendar.ConfigurationError{Key: path, Err: err}
	}
	return creds, nil
}

func ParseCredentials(data []byte, defaultRedirectURI string) (*csvcalendar.Credentials, error) {
	var raw struct {
		Web       *clientSecrets `json:"web"`
		Installed *clientSecrets `json:"installed"`
		clientSecrets
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	secrets := &raw.clientSecrets
	if raw.Web != nil {
		secrets = raw.Web
	} else if raw.Installed != nil {
		secrets = raw.Installed
	}

	creds := &csvcalendar.Credentials{
		ClientID:     secrets.ClientID,
		ClientSecret: secrets.ClientSecret,
		RedirectURI:  secrets.RedirectURI,
	}
	if creds.RedirectURI == "" && len(secrets.RedirectURIs) > 0 {
		creds.RedirectURI = secrets.RedirectURIs[0]
	}
	if creds.RedirectURI == "" {
		creds.RedirectURI = defaultRedirectURI
	}
	if creds.ClientID == "" {
		return nil, errors.New("client_id is missing")
	}
	return creds, nil
}
