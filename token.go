package csvcalendar

import "time"

// DefaultTokenBuffer is subtracted from a token expiry before trusting it.
const DefaultTokenBuffer = 5 * time.Minute

// Token is the persisted OAuth credential bundle.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	// ExpiryDate is in epoch milliseconds, zero means the token never expires.
	ExpiryDate int64  `json:"expiry_date,omitempty"`
	Timestamp  string `json:"timestamp,omitempty"`
}

func (t *Token) Expiry() time.Time {
	if t == nil || t.ExpiryDate == 0 {
		return time.Time{}
	}
	return time.UnixMilli(t.ExpiryDate)
}

func (t *Token) SetExpiry(expiry time.Time) {
	if expiry.IsZero() {
		t.ExpiryDate = 0
		return
	}
	t.ExpiryDate = expiry.UnixMilli()
}

// IsTokenExpired reports whether now is already inside the buffer before
// the token expiry. Tokens without expiry never expire.
func IsTokenExpired(t *Token, now time.Time, buffer time.Duration) bool {
	if t == nil || t.ExpiryDate == 0 {
		return false
	}
	return !now.Before(t.Expiry().Add(-buffer))
}
