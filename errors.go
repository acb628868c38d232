package csvcalendar

import "fmt"

// ValidationError reports a field that failed a required, range or format check.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func newValidationError(field, format string, a ...any) *ValidationError {
	return &ValidationError{
		Field: field,
		Msg:   fmt.Sprintf(format, a...),
	}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports missing or unusable configuration.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// AuthenticationError reports a failed authorization or token exchange.
type AuthenticationError struct {
	Code string
	Err  error
}

func (e *AuthenticationError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("authentication failed (%s): %v", e.Code, e.Err)
	}
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// FileProcessingError reports a file that couldn't be read.
type FileProcessingError struct {
	Path string
	Err  error
}

func (e *FileProcessingError) Error() string {
	return fmt.Sprintf("processing file %s: %v", e.Path, e.Err)
}

func (e *FileProcessingError) Unwrap() error {
	return e.Err
}

// CalendarError reports a provider side failure. Code is the HTTP
// status returned by the provider, when there was one.
type CalendarError struct {
	CalendarID string
	Provider   string
	Code       int
	Err        error
}

func (e *CalendarError) Error() string {
	return fmt.Sprintf("error creating event in %s: %v", e.Provider, e.Err)
}

func (e *CalendarError) Unwrap() error {
	return e.Err
}

// TokenError reports a problem with a specific kind of token (access, refresh).
type TokenError struct {
	Kind string
	Err  error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s token: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}
