package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/guilherme-santos/csvcalendar"
)

const ProviderName = "Google Calendar"

var ErrNotAuthenticated = errors.New("google: provider is not authenticated")

type Config struct {
	Scopes      []string
	Timezone    string
	TokenBuffer time.Duration
	// ServiceOptions are passed to calendar.NewService after the
	// authorized HTTP client.
	ServiceOptions []option.ClientOption
}

// Client creates events on Google Calendar with the token it's given.
type Client struct {
	creds    *csvcalendar.Credentials
	cfg      Config
	oauthCfg *oauth2.Config
	token    *csvcalendar.Token

	Now func() time.Time
}

func NewClient(creds *csvcalendar.Credentials, cfg Config) (*Client, error) {
	if creds == nil {
		return nil, &csvcalendar.ConfigurationError{
			Key: "credentials",
			Err: errors.New("credentials are required for the google provider"),
		}
	}
	if cfg.Timezone == "" {
		cfg.Timezone = csvcalendar.DefaultTimezone
	}
	if cfg.TokenBuffer <= 0 {
		cfg.TokenBuffer = csvcalendar.DefaultTokenBuffer
	}
	return &Client{
		creds: creds,
		cfg:   cfg,
		Now:   time.Now,
	}, nil
}

func newOAuthConfig(creds *csvcalendar.Credentials, scopes []string) (*oauth2.Config, error) {
	required := []struct{ key, value string }{
		{"client_id", creds.ClientID},
		{"client_secret", creds.ClientSecret},
		{"redirect_uri", creds.RedirectURI},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, &csvcalendar.ConfigurationError{
				Key: r.key,
				Err: fmt.Errorf("google: %s is missing from credentials", r.key),
			}
		}
	}
	if len(scopes) == 0 {
		scopes = []string{calendar.CalendarScope, calendar.CalendarEventsScope}
	}
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}, nil
}

func (c *Client) Initialize(context.Context) error {
	oauthCfg, err := newOAuthConfig(c.creds, c.cfg.Scopes)
	if err != nil {
		return err
	}
	c.oauthCfg = oauthCfg
	return nil
}

// SetToken hands over the credentials obtained by the Authenticator.
func (c *Client) SetToken(tok *csvcalendar.Token) {
	c.token = tok
}

func (c *Client) IsAuthenticated() bool {
	if c.oauthCfg == nil {
		return false
	}
	if c.token == nil || c.token.AccessToken == "" {
		return false
	}
	return !csvcalendar.IsTokenExpired(c.token, c.Now(), c.cfg.TokenBuffer)
}

func (c *Client) CreateEvent(ctx context.Context, d *csvcalendar.CalendarEventData, calendarID string) (*csvcalendar.RemoteEvent, error) {
	if calendarID == "" {
		calendarID = csvcalendar.DefaultCalendarID
	}
	if err := csvcalendar.ValidatePayloadShape(d); err != nil {
		return nil, err
	}
	if err := csvcalendar.ValidateCalendarEventData(d); err != nil {
		return nil, err
	}
	if !c.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, newCalendarError(calendarID, err)
	}
	payload := csvcalendar.NewPayload(d, c.cfg.Timezone)
	gevent, err := svc.Events.Insert(calendarID, newGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		return nil, newCalendarError(calendarID, err)
	}
	return newRemoteEvent(gevent), nil
}

func (c *Client) Info() csvcalendar.ProviderInfo {
	return csvcalendar.ProviderInfo{
		Name:          "GoogleCalendarProvider",
		Type:          "google",
		Authenticated: c.IsAuthenticated(),
	}
}

func (c *Client) calendarSvc(ctx context.Context) (*calendar.Service, error) {
	httpClient := c.oauthCfg.Client(ctx, toOAuth2Token(c.token))
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.cfg.ServiceOptions...)
	return calendar.NewService(ctx, opts...)
}

func newCalendarError(calendarID string, err error) *csvcalendar.CalendarError {
	cerr := &csvcalendar.CalendarError{
		CalendarID: calendarID,
		Provider:   ProviderName,
		Err:        err,
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		cerr.Code = gErr.Code
	}
	return cerr
}

// IsNotFound reports whether err is a calendar the account can't see.
func IsNotFound(err error) bool {
	var cerr *csvcalendar.CalendarError
	return errors.As(err, &cerr) && cerr.Code == http.StatusNotFound
}

func newGoogleEvent(p *csvcalendar.Payload) *calendar.Event {
	overrides := make([]*calendar.EventReminder, len(p.Reminders.Overrides))
	for i, r := range p.Reminders.Overrides {
		overrides[i] = &calendar.EventReminder{
			Method:  r.Method,
			Minutes: int64(r.Minutes),
			// A reminder at 0 minutes would be dropped otherwise.
			ForceSendFields: []string{"Minutes"},
		}
	}
	return &calendar.Event{
		Summary: p.Summary,
		Start: &calendar.EventDateTime{
			DateTime: p.Start.DateTime,
			TimeZone: p.Start.TimeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: p.End.DateTime,
			TimeZone: p.End.TimeZone,
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      p.Reminders.UseDefault,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func newRemoteEvent(event *calendar.Event) *csvcalendar.RemoteEvent {
	res := &csvcalendar.RemoteEvent{
		ID:       event.Id,
		Summary:  event.Summary,
		Status:   event.Status,
		HTMLLink: event.HtmlLink,
		Created:  event.Created,
		Updated:  event.Updated,
	}
	if event.Start != nil {
		res.Start = csvcalendar.EventDateTime{DateTime: event.Start.DateTime, TimeZone: event.Start.TimeZone}
	}
	if event.End != nil {
		res.End = csvcalendar.EventDateTime{DateTime: event.End.DateTime, TimeZone: event.End.TimeZone}
	}
	if event.Reminders != nil {
		res.Reminders.UseDefault = event.Reminders.UseDefault
		for _, r := range event.Reminders.Overrides {
			res.Reminders.Overrides = append(res.Reminders.Overrides, csvcalendar.Reminder{
				Method:  r.Method,
				Minutes: int(r.Minutes),
			})
		}
	}
	return res
}
