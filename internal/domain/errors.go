package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNumber signals a rent or meter reading that is not a decimal number.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrMissingCredentials signals an incomplete messaging username/API key pair.
	ErrMissingCredentials = errors.New("username and API key are required")
	// ErrMessagingDisabled signals that no messaging provider was set up for the run.
	ErrMessagingDisabled = errors.New("SMS service not initialized")
	// ErrNoRecipient signals a bill without a phone number to notify.
	ErrNoRecipient = errors.New("phone number missing")
	// ErrProviderError signals a messaging provider failure.
	ErrProviderError = errors.New("messaging provider error")
)

// ProviderError wraps ErrProviderError with the provider's HTTP status and response body.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrProviderError.Error(), e.StatusCode, e.Body)
}

func (e *ProviderError) Unwrap() error { return ErrProviderError }

// NewProviderError creates a provider error from a rejected response.
func NewProviderError(statusCode int, body string) error {
	return &ProviderError{StatusCode: statusCode, Body: body}
}
