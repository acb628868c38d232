package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/guilherme-santos/csvcalendar"
	"github.com/guilherme-santos/csvcalendar/file"
)

type fakeReceiver struct {
	state string
	code  string
	err   error
}

func (r *fakeReceiver) AwaitCode(_ context.Context, state string) (string, error) {
	r.state = state
	return r.code, r.err
}

func newTestAuthenticator(t *testing.T, receiver CodeReceiver, handler http.HandlerFunc) (*Authenticator, *file.TokenFile) {
	t.Helper()

	tokens := file.NewTokenFile(filepath.Join(t.TempDir(), "token.json"), 0, nil)
	a, err := NewAuthenticator(testCreds, nil, tokens, receiver, nil)
	require.NoError(t, err)

	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		a.oauthCfg.Endpoint = oauth2.Endpoint{
			AuthURL:   srv.URL + "/auth",
			TokenURL:  srv.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		}
	}
	return a, tokens
}

func tokenHandler(t *testing.T, grantType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseForm())
		assert.Equal(t, grantType, req.PostForm.Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestNewAuthenticator_NoCredentials(t *testing.T) {
	_, err := NewAuthenticator(nil, nil, nil, nil, nil)

	var cerr *csvcalendar.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "credentials", cerr.Key)
}

func TestAuthenticator_LoadSavedTokens(t *testing.T) {
	a, tokens := newTestAuthenticator(t, nil, nil)
	assert.Nil(t, a.LoadSavedTokens())
	assert.Nil(t, a.Token())
	assert.False(t, a.IsAuthenticated())

	require.True(t, tokens.Save(validToken()))

	tok := a.LoadSavedTokens()
	require.NotNil(t, tok)
	assert.Equal(t, "access", a.Token().AccessToken)
	assert.True(t, a.IsAuthenticated())
}

func TestAuthenticator_EnsureValidToken(t *testing.T) {
	a, _ := newTestAuthenticator(t, nil, tokenHandler(t, "refresh_token",
		`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	assert.False(t, a.EnsureValidToken(context.Background()), "no token")

	a.SaveTokens(validToken())
	assert.True(t, a.EnsureValidToken(context.Background()))
	assert.Equal(t, "access", a.Token().AccessToken)

	expiring := validToken()
	expiring.SetExpiry(time.Now().Add(time.Minute))
	a.SaveTokens(expiring)
	assert.True(t, a.EnsureValidToken(context.Background()))
	assert.Equal(t, "fresh", a.Token().AccessToken)
	assert.Equal(t, "refresh", a.Token().RefreshToken)
}

func TestAuthenticator_EnsureValidToken_NoAccessToken(t *testing.T) {
	a, tokens := newTestAuthenticator(t, nil, tokenHandler(t, "refresh_token",
		`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
	require.True(t, tokens.Save(&csvcalendar.Token{RefreshToken: "refresh"}))
	require.NotNil(t, a.LoadSavedTokens())
	assert.False(t, a.IsAuthenticated())

	assert.True(t, a.EnsureValidToken(context.Background()))
	assert.True(t, a.IsAuthenticated())
	assert.Equal(t, "fresh", a.Token().AccessToken)
	assert.Equal(t, "refresh", a.Token().RefreshToken)
}

func TestAuthenticator_RefreshToken(t *testing.T) {
	a, tokens := newTestAuthenticator(t, nil, tokenHandler(t, "refresh_token",
		`{"access_token":"fresh","refresh_token":"rotated","token_type":"Bearer","expires_in":3600,"scope":"calendar"}`))
	a.SaveTokens(validToken())

	tok, err := a.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok.AccessToken)
	assert.Equal(t, "rotated", tok.RefreshToken)
	assert.Equal(t, "calendar", tok.Scope)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Expiry(), time.Minute)

	saved := tokens.Load()
	require.NotNil(t, saved)
	assert.Equal(t, "fresh", saved.AccessToken)
}

func TestAuthenticator_RefreshToken_NoRefreshToken(t *testing.T) {
	a, _ := newTestAuthenticator(t, nil, nil)
	a.SaveTokens(&csvcalendar.Token{AccessToken: "access"})

	_, err := a.RefreshToken(context.Background())

	var terr *csvcalendar.TokenError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "refresh", terr.Kind)
}

func TestAuthenticator_RefreshToken_Rejected(t *testing.T) {
	a, _ := newTestAuthenticator(t, nil, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`))
	})
	expiring := validToken()
	expiring.SetExpiry(time.Now().Add(-time.Hour))
	a.SaveTokens(expiring)

	_, err := a.RefreshToken(context.Background())

	var aerr *csvcalendar.AuthenticationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "invalid_grant", aerr.Code)
	assert.False(t, a.EnsureValidToken(context.Background()))
}

func TestAuthenticator_Authenticate(t *testing.T) {
	receiver := &fakeReceiver{code: "4/code"}
	a, tokens := newTestAuthenticator(t, receiver, func(w http.ResponseWriter, req *http.Request) {
		require.NoError(t, req.ParseForm())
		assert.Equal(t, "authorization_code", req.PostForm.Get("grant_type"))
		assert.Equal(t, "4/code", req.PostForm.Get("code"))
		assert.Equal(t, testCreds.RedirectURI, req.PostForm.Get("redirect_uri"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new","refresh_token":"r","token_type":"Bearer","expires_in":3600}`))
	})
	var prompted string
	a.Prompt = func(url string) { prompted = url }

	tok, err := a.Authenticate(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(receiver.state, "csvcalendar-"))
	assert.Contains(t, prompted, "access_type=offline")
	assert.Contains(t, prompted, "prompt=consent")
	assert.Contains(t, prompted, "state="+receiver.state)
	assert.Equal(t, "new", tok.AccessToken)
	assert.Equal(t, "new", tokens.Load().AccessToken)
	assert.True(t, a.IsAuthenticated())
}

func TestAuthenticator_Authenticate_ReceiverError(t *testing.T) {
	a, tokens := newTestAuthenticator(t, &fakeReceiver{err: ErrInvalidState}, nil)

	_, err := a.Authenticate(context.Background())

	var aerr *csvcalendar.AuthenticationError
	require.ErrorAs(t, err, &aerr)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.False(t, tokens.Exists())
}
