package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guilherme-santos/csvcalendar"
)

const defaultRedirect = "http://localhost:3000/callback"

func TestParseCredentials_Web(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{
		"web": {
			"client_id": "id",
			"client_secret": "secret",
			"redirect_uris": ["http://localhost:4000/callback", "http://other"]
		}
	}`), defaultRedirect)
	require.NoError(t, err)
	assert.Equal(t, &csvcalendar.Credentials{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:4000/callback",
	}, creds)
}

func TestParseCredentials_WebWithoutRedirect(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{"web": {"client_id": "id", "client_secret": "secret"}}`), defaultRedirect)
	require.NoError(t, err)
	assert.Equal(t, defaultRedirect, creds.RedirectURI)
}

func TestParseCredentials_Flat(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{
		"client_id": "id",
		"client_secret": "secret",
		"redirect_uri": "http://localhost:5000/cb"
	}`), defaultRedirect)
	require.NoError(t, err)
	assert.Equal(t, "id", creds.ClientID)
	assert.Equal(t, "http://localhost:5000/cb", creds.RedirectURI)
}

func TestParseCredentials_Invalid(t *testing.T) {
	_, err := ParseCredentials([]byte(`not json`), defaultRedirect)
	assert.Error(t, err)

	_, err = ParseCredentials([]byte(`{"web": {}}`), defaultRedirect)
	assert.EqualError(t, err, "client_id is missing")
}

func TestLoadCredentials_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	_, err := LoadCredentials(path, defaultRedirect)
	var cerr *csvcalendar.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, path, cerr.Key)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
