// Package aierr maps AI provider failures onto the domain's external
// service error kinds.
package aierr

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// KindForStatus returns the error kind for an HTTP status code.
func KindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.ErrAuth
	case status == http.StatusTooManyRequests:
		return domain.ErrRateLimit
	case status >= 400 && status < 500:
		return domain.ErrBadRequest
	default:
		return domain.ErrServiceFailure
	}
}

// FromStatus builds a structured error for a failed provider response.
func FromStatus(provider string, status int, message string) error {
	return domain.Errorf(KindForStatus(status), "%s: %s", provider, message).
		WithContext("provider", provider).
		WithContext("status", strconv.Itoa(status))
}

// Transport wraps a failure that never produced a provider response.
// Cancellation is passed through untouched.
func Transport(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return domain.Errorf(domain.ErrConnection, "%s: %v", provider, err).
		WithContext("provider", provider)
}

// EmptyResponse reports a successful call that returned nothing usable.
func EmptyResponse(provider, what string) error {
	return domain.Errorf(domain.ErrServiceFailure, "%s: no %s returned", provider, what).
		WithContext("provider", provider)
}
