package hls

import (
	"errors"
	"fmt"
)

// Error codes classifying every failure the library reports.
const (
	ErrCodeFormat     = "FORMAT"     // malformed playlist, attribute list, or cache file
	ErrCodeResolution = "RESOLUTION" // no variant or key satisfies the request
	ErrCodeTransport  = "TRANSPORT"  // segment or key fetch failure
	ErrCodeCrypto     = "CRYPTO"     // decryption failure
	ErrCodeIO         = "IO"         // output or local file failure
)

// Error is the error type returned by this package. URL names the offending
// URL or resource when one is known.
type Error struct {
	Code    string
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := e.Message
	if e.URL != "" {
		s += " (" + e.URL + ")"
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrCodeOf returns the code of err if it is (or wraps) a package Error, and
// an empty string otherwise.
func ErrCodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newError(code, url string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		URL:     url,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}
