package setup

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain"
	"github.com/kailas-cloud/rentbill/internal/usecase/notify"
)

// Prompt labels.
const (
	PromptUsername = "\nEnter Africastalking username: "
	PromptAPIKey   = "Enter Africastalking API key: "
)

const rule = "--------------------------------------------------"

// Credentials is a complete provider login. It only exists when both parts are set.
type Credentials struct {
	Username string
	APIKey   string
}

// Service runs credential setup and picks the run's Notifier.
type Service struct {
	console Console
	factory ProviderFactory
	preset  Credentials
	logger  *zap.Logger
}

// New creates a Service.
func New(console Console, factory ProviderFactory, logger *zap.Logger) *Service {
	return &Service{console: console, factory: factory, logger: logger}
}

// WithPreset supplies configured credentials. A preset part is not prompted for.
func (s *Service) WithPreset(username, apiKey string) *Service {
	s.preset = Credentials{Username: strings.TrimSpace(username), APIKey: strings.TrimSpace(apiKey)}
	return s
}

// Run collects credentials, verifies them with one balance check and returns the
// SMS notifier. Any problem with the credentials or the provider returns a Disabled
// notifier instead. Run fails only when ctx is canceled.
func (s *Service) Run(ctx context.Context) (notify.Notifier, error) {
	s.console.Println("\nAfricasTalking SMS Configuration")
	s.console.Println(rule)
	s.console.Println("1. Press Enter to skip SMS functionality")
	s.console.Println("2. Enter credentials for SMS notifications")
	s.console.Println(rule)

	username, err := s.answer(ctx, s.preset.Username, PromptUsername)
	if err != nil {
		return s.disable(ctx, err)
	}
	if username == "" {
		s.logger.Info("SMS notifications skipped")
		return notify.NewDisabled(nil), nil
	}

	apiKey, err := s.answer(ctx, s.preset.APIKey, PromptAPIKey)
	if err != nil {
		return s.disable(ctx, err)
	}
	if apiKey == "" {
		s.console.Println("API key is required. SMS functionality will be disabled.")
		s.logger.Warn("SMS disabled: API key missing", zap.String("username", username))
		return notify.NewDisabled(domain.ErrMissingCredentials), nil
	}

	creds := Credentials{Username: username, APIKey: apiKey}
	provider, err := s.factory(creds)
	if err != nil {
		return s.disable(ctx, fmt.Errorf("initialize provider: %w", err))
	}

	balance, err := provider.FetchBalance(ctx)
	if err != nil {
		return s.disable(ctx, fmt.Errorf("verify credentials: %w", err))
	}

	env := provider.Environment()
	s.console.Println("\nConnection Status:")
	s.console.Println(rule)
	s.console.Printf("Username: %s\n", creds.Username)
	s.console.Printf("Environment: %s\n", env)
	s.console.Printf("Balance: %s\n", balance)

	s.logger.Info("SMS provider connected",
		zap.String("username", creds.Username),
		zap.String("environment", env),
		zap.String("balance", balance),
	)

	return notify.NewSMS(provider, notify.Account{
		Username:    creds.Username,
		Environment: env,
	}, s.logger), nil
}

func (s *Service) answer(ctx context.Context, preset, label string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	v, err := s.console.PromptOptional(ctx, label)
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}
	return strings.TrimSpace(v), nil
}

// disable turns SMS off for the run. An interrupted run is not a credential
// problem and is returned as an error instead.
func (s *Service) disable(ctx context.Context, err error) (notify.Notifier, error) {
	if ctx.Err() != nil {
		s.logger.Debug("Credential setup interrupted", zap.Error(err))
		return nil, fmt.Errorf("credential setup: %w", ctx.Err())
	}
	s.console.Printf("\nAuthentication Error: %v\n", err)
	s.logger.Warn("SMS disabled for this run", zap.Error(err))
	return notify.NewDisabled(err), nil
}
