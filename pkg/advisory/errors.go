package advisory

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every failure to reach the model server: transport
// errors, timeouts, and non-success status codes.
var ErrUnavailable = errors.New("advisory service unavailable")

// ConfigError reports an invalid client configuration. It is returned by New
// before any request is attempted.
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("advisory config: %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("advisory config: %s: %s", e.Field, e.Message)
}

// UnavailableError carries the details behind ErrUnavailable.
type UnavailableError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.URL, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: HTTP status %d", e.URL, e.StatusCode)
		if e.Message != "" {
			msg += ": " + e.Message
		}
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return "advisory unavailable: " + msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// Is makes errors.Is(err, ErrUnavailable) hold for every UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// MalformedResponseError describes a response that could not be turned into
// a Result. Analyze never returns it; it is logged and replaced by a
// diagnostic Result.
type MalformedResponseError struct {
	Message string
	Content string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed advisory response: %s: %v", e.Message, e.Cause)
	}
	return "malformed advisory response: " + e.Message
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
