package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError represents a non-2xx HTTP response from the API. Message is the
// server-provided detail when there is one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// DecodeError is returned when a successful response body is not valid JSON.
// Its message is the raw body text.
type DecodeError struct {
	StatusCode int
	Raw        string
	Err        error
}

func (e *DecodeError) Error() string {
	if e.Raw == "" {
		return "invalid JSON response"
	}
	return e.Raw
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsUnauthorized reports whether the API rejected the session token.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// genericMessage is used when the response carries no usable detail.
func genericMessage(status int) string {
	return fmt.Sprintf("request failed (HTTP %d)", status)
}

// errorMessage extracts the message for a failed response:
// the "detail" field of a JSON body, the raw text of a non-JSON body,
// or a generic message.
func errorMessage(status int, raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return genericMessage(status)
	}
	if !json.Valid(trimmed) {
		return string(trimmed)
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &payload); err != nil || len(payload.Detail) == 0 {
		return genericMessage(status)
	}
	if msg := detailMessage(payload.Detail); msg != "" {
		return msg
	}
	return genericMessage(status)
}

// detailMessage renders a detail value. FastAPI sends a string for
// HTTPException and a list of {loc, msg, type} objects for validation errors.
func detailMessage(detail json.RawMessage) string {
	var s string
	if json.Unmarshal(detail, &s) == nil {
		return strings.TrimSpace(s)
	}

	var items []json.RawMessage
	if json.Unmarshal(detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if m := validationMessage(item); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}

	if bytes.Equal(detail, []byte("null")) {
		return ""
	}
	return string(detail)
}

func validationMessage(item json.RawMessage) string {
	var s string
	if json.Unmarshal(item, &s) == nil {
		return s
	}
	var v struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if json.Unmarshal(item, &v) != nil || v.Msg == "" {
		return ""
	}
	if len(v.Loc) > 0 {
		return fmt.Sprintf("%v: %s", v.Loc[len(v.Loc)-1], v.Msg)
	}
	return v.Msg
}
