package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Kind classifies a provider failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuth
	KindRateLimit
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Error is a classified provider failure.
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s error (status %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Classify returns the Kind of err. Errors not produced by this package are
// classified from their type.
func Classify(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	kind, _ := classify(err)
	return kind
}

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool { return Classify(err) == KindAuth }

// IsRateLimit reports whether err is a rate-limit failure.
func IsRateLimit(err error) bool { return Classify(err) == KindRateLimit }

func formatError(provider, msg string) error {
	return &Error{Provider: provider, Kind: KindFormat, Err: errors.New(msg)}
}

// wrap converts an SDK error into an *Error. Context cancellation is passed
// through unchanged so callers can tell an abort from a failure.
func wrap(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	kind, status := classify(err)
	return &Error{Provider: provider, Kind: kind, Status: status, Err: err}
}

func classify(err error) (Kind, int) {
	if status, msg, ok := statusOf(err); ok {
		return kindForStatus(status, msg), status
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork, 0
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork, 0
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetwork, 0
	}
	return KindUnknown, 0
}

// statusOf extracts the HTTP status from the SDK error types.
func statusOf(err error) (int, string, bool) {
	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code, gErr.Message, true
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) {
		return gErrPtr.Code, gErrPtr.Message, true
	}
	var oErr *openai.APIError
	if errors.As(err, &oErr) {
		return oErr.HTTPStatusCode, oErr.Message, true
	}
	var oReqErr *openai.RequestError
	if errors.As(err, &oReqErr) {
		return oReqErr.HTTPStatusCode, oReqErr.Error(), true
	}
	var aErr *anthropic.Error
	if errors.As(err, &aErr) {
		return aErr.StatusCode, aErr.Error(), true
	}
	return 0, "", false
}

func kindForStatus(status int, msg string) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 429:
		return KindRateLimit
	// Gemini rejects a malformed key with 400 rather than 401.
	case status == 400 && strings.Contains(strings.ToLower(msg), "api key"):
		return KindAuth
	default:
		return KindUnknown
	}
}
