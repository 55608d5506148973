package intake

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain"
	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	"github.com/kailas-cloud/rentbill/internal/domain/phone"
)

// Prompt labels, in the order they are asked.
const (
	PromptName      = "Enter tenant name: "
	PromptApartment = "Enter apartment number: "
	PromptRent      = "Enter monthly rent amount (KES): "
	PromptPrevious  = "Enter previous water meter reading: "
	PromptCurrent   = "Enter current water meter reading: "
	PromptPhone     = "Enter tenant phone number (or press Enter to skip): "
)

// Service collects one tenant's billing inputs.
type Service struct {
	console Console
	logger  *zap.Logger
}

// New creates a Service.
func New(console Console, logger *zap.Logger) *Service {
	return &Service{console: console, logger: logger}
}

// Collect prompts for the tenant, rent, both meter readings and an optional phone.
// A number that does not parse aborts intake with domain.ErrInvalidNumber,
// and a canceled ctx aborts it at the pending prompt.
func (s *Service) Collect(ctx context.Context) (bill.Tenant, error) {
	var t bill.Tenant
	var err error

	if t.Name, err = s.console.Prompt(ctx, PromptName); err != nil {
		return bill.Tenant{}, err
	}
	if t.Apartment, err = s.console.Prompt(ctx, PromptApartment); err != nil {
		return bill.Tenant{}, err
	}
	if t.Rent, err = s.number(ctx, PromptRent, "rent amount"); err != nil {
		return bill.Tenant{}, err
	}
	if t.PreviousReading, err = s.number(ctx, PromptPrevious, "previous reading"); err != nil {
		return bill.Tenant{}, err
	}
	if t.CurrentReading, err = s.number(ctx, PromptCurrent, "current reading"); err != nil {
		return bill.Tenant{}, err
	}

	raw, err := s.console.PromptOptional(ctx, PromptPhone)
	if err != nil {
		return bill.Tenant{}, err
	}
	t.Phone = phone.Normalize(raw)

	s.logger.Debug("Tenant collected",
		zap.String("apartment", t.Apartment),
		zap.Bool("has_phone", t.Phone != ""),
	)
	return t, nil
}

func (s *Service) number(ctx context.Context, label, field string) (decimal.Decimal, error) {
	raw, err := s.console.Prompt(ctx, label)
	if err != nil {
		return decimal.Decimal{}, err
	}
	v, err := ParseNumber(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

// ParseNumber parses a decimal amount or reading, ignoring surrounding whitespace.
func ParseNumber(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidNumber, s)
	}
	return v, nil
}
