package setup

import (
	"context"

	"github.com/kailas-cloud/rentbill/internal/usecase/notify"
)

// Console asks for credentials and shows the connection status.
type Console interface {
	PromptOptional(ctx context.Context, label string) (string, error)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Provider is a messaging account that reports its balance and sends SMS.
type Provider interface {
	notify.Sender
	FetchBalance(ctx context.Context) (string, error)
	Environment() string // "Sandbox" or "Production"
}

// ProviderFactory builds a Provider for a complete set of credentials.
type ProviderFactory func(creds Credentials) (Provider, error)
