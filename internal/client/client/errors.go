package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRejected     = errors.New("request rejected")
)

// APIError is a non-2xx backend response. Message is set only from a JSON
// body; anything else (a proxy error page, say) lands in Body and is never
// shown to users.
type APIError struct {
	Status  int
	Message string
	Errors  []string
	Body    string
	err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s (status %d): %s", e.err, e.Status, e.Message)
	case e.Body != "":
		return fmt.Sprintf("%s (status %d): %s", e.err, e.Status, e.Body)
	default:
		return fmt.Sprintf("%s (status %d)", e.err, e.Status)
	}
}

func (e *APIError) Unwrap() error { return e.err }

// Message returns the backend-supplied message carried by err, or "" if
// err is not an APIError or the backend sent none.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func sentinelFor(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrRejected
	}
}

const maxPlainMessage = 200

// mapError turns a failed response into an *APIError. JSON bodies shaped
// like {"message": "...", "errors": [...]} keep their message and field
// errors; other bodies are kept truncated in Body for logs.
func mapError(status int, body []byte) error {
	apiErr := &APIError{Status: status, err: sentinelFor(status)}

	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		if m := res.Get("message"); m.Exists() && m.Type == gjson.String {
			apiErr.Message = m.String()
		} else if m := res.Get("error"); m.Exists() && m.Type == gjson.String {
			apiErr.Message = m.String()
		}
		res.Get("errors").ForEach(func(_, v gjson.Result) bool {
			apiErr.Errors = append(apiErr.Errors, v.String())
			return true
		})
		return apiErr
	}

	apiErr.Body = truncate(strings.TrimSpace(string(body)), maxPlainMessage)
	return apiErr
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(truncated)"
}
