package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/guilherme-santos/csvcalendar"
)

var ErrNoRefreshToken = errors.New("no refresh token available")

// Authenticator obtains, refreshes and persists the OAuth token used by
// the Client.
type Authenticator struct {
	oauthCfg *oauth2.Config
	tokens   csvcalendar.TokenManager
	receiver CodeReceiver
	observer csvcalendar.Observer
	token    *csvcalendar.Token

	// Prompt shows the authorization URL to the user.
	Prompt func(authURL string)
	Now    func() time.Time
}

func NewAuthenticator(creds *csvcalendar.Credentials, scopes []string, tokens csvcalendar.TokenManager, receiver CodeReceiver, obs csvcalendar.Observer) (*Authenticator, error) {
	if creds == nil {
		return nil, &csvcalendar.ConfigurationError{
			Key: "credentials",
			Err: errors.New("credentials are required for authentication"),
		}
	}
	oauthCfg, err := newOAuthConfig(creds, scopes)
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		oauthCfg: oauthCfg,
		tokens:   tokens,
		receiver: receiver,
		observer: csvcalendar.ObserverOrNop(obs),
		Prompt:   func(string) {},
		Now:      time.Now,
	}, nil
}

func (a *Authenticator) Token() *csvcalendar.Token {
	return a.token
}

// LoadSavedTokens makes the stored token the current one, nil when there
// is nothing stored.
func (a *Authenticator) LoadSavedTokens() *csvcalendar.Token {
	tok := a.tokens.Load()
	if tok != nil {
		a.token = tok
	}
	return tok
}

func (a *Authenticator) SaveTokens(tok *csvcalendar.Token) bool {
	a.token = tok
	return a.tokens.Save(tok)
}

func (a *Authenticator) IsAuthenticated() bool {
	return a.token != nil && a.token.AccessToken != "" && !a.tokens.IsExpired(a.token)
}

// RefreshToken exchanges the refresh token for a new access token. The
// refresh token is kept when the response doesn't carry a new one.
func (a *Authenticator) RefreshToken(ctx context.Context) (*csvcalendar.Token, error) {
	if a.token == nil || a.token.RefreshToken == "" {
		return nil, &csvcalendar.TokenError{Kind: "refresh", Err: ErrNoRefreshToken}
	}

	expired := toOAuth2Token(a.token)
	expired.AccessToken = ""
	newTok, err := a.oauthCfg.TokenSource(ctx, expired).Token()
	if err != nil {
		err = newAuthenticationError("refreshing token", err)
		a.observer.TokenRefreshed(err)
		return nil, err
	}

	tok := fromOAuth2Token(newTok)
	if tok.RefreshToken == "" {
		tok.RefreshToken = a.token.RefreshToken
	}
	if tok.Scope == "" {
		tok.Scope = a.token.Scope
	}
	a.SaveTokens(tok)
	a.observer.TokenRefreshed(nil)
	return tok, nil
}

// EnsureValidToken reports whether a usable token is in place, refreshing
// it when the access token is missing or about to expire.
func (a *Authenticator) EnsureValidToken(ctx context.Context) bool {
	if a.token == nil {
		return false
	}
	if a.IsAuthenticated() {
		return true
	}
	_, err := a.RefreshToken(ctx)
	return err == nil
}

// Authenticate runs the interactive authorization code flow.
func (a *Authenticator) Authenticate(ctx context.Context) (*csvcalendar.Token, error) {
	if a.receiver == nil {
		return nil, &csvcalendar.ConfigurationError{
			Key: "callback",
			Err: errors.New("no callback receiver configured"),
		}
	}

	state := "csvcalendar-" + uuid.NewString()
	authURL := a.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	a.observer.AuthorizationURL(authURL)
	a.Prompt(authURL)

	code, err := a.receiver.AwaitCode(ctx, state)
	if err != nil {
		return nil, newAuthenticationError("receiving authorization code", err)
	}

	oauthTok, err := a.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return nil, newAuthenticationError("exchanging authorization code", err)
	}

	tok := fromOAuth2Token(oauthTok)
	a.SaveTokens(tok)
	return tok, nil
}

func newAuthenticationError(op string, err error) *csvcalendar.AuthenticationError {
	aerr := &csvcalendar.AuthenticationError{Err: fmt.Errorf("google: %s: %w", op, err)}
	var rErr *oauth2.RetrieveError
	if errors.As(err, &rErr) {
		aerr.Code = rErr.ErrorCode
	}
	return aerr
}
