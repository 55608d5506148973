package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain"
	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	"github.com/kailas-cloud/rentbill/internal/domain/notification"
	"github.com/kailas-cloud/rentbill/internal/metrics"
)

// Account identifies the provider account messages go out from, for logging.
type Account struct {
	Username    string
	Environment string
}

// SMS sends the bill summary to the tenant's phone through a Sender.
type SMS struct {
	sender  Sender
	account Account
	logger  *zap.Logger
}

// NewSMS creates a provider-backed notifier.
func NewSMS(sender Sender, account Account, logger *zap.Logger) *SMS {
	return &SMS{sender: sender, account: account, logger: logger}
}

// Message composes the SMS body for a bill.
func Message(b bill.Bill) string {
	return fmt.Sprintf(
		"Dear %s, your %s bill for Apt #%s is ready. "+
			"Total amount due: %s. "+
			"Please pay via M-Pesa Paybill %s, Account: %s",
		b.Name, b.Period(), b.Apartment,
		b.Amount(b.Total),
		b.Tariff.PaybillNumber, b.AccountReference(),
	)
}

// Notify sends the summary to b.Phone. A bill without a phone is skipped.
func (n *SMS) Notify(ctx context.Context, b bill.Bill) notification.Result {
	if b.Phone == "" {
		return n.record(notification.NewSkipped(domain.ErrNoRecipient))
	}

	n.logger.Info("Sending SMS",
		zap.String("phone", b.Phone),
		zap.String("username", n.account.Username),
		zap.String("environment", n.account.Environment),
	)

	delivery, err := n.sender.SendSMS(ctx, Message(b), []string{b.Phone})
	if err != nil {
		n.logger.Error("SMS delivery failed",
			zap.String("phone", b.Phone),
			zap.String("error_type", errorType(err)),
			zap.Error(err),
		)
		return n.record(notification.NewFailed(err))
	}

	n.logger.Info("SMS provider response",
		zap.String("message", delivery.Summary),
		zap.Int("recipients", len(delivery.Recipients)),
		zap.String("raw", delivery.Raw),
	)
	for _, r := range delivery.Recipients {
		n.logger.Info("SMS recipient",
			zap.String("number", r.Number),
			zap.String("status", r.Status),
			zap.Int("status_code", r.StatusCode),
			zap.String("cost", r.Cost),
			zap.String("message_id", r.MessageID),
		)
	}
	return n.record(notification.NewSent(delivery))
}

func (n *SMS) record(r notification.Result) notification.Result {
	metrics.NotificationsTotal.WithLabelValues(string(r.Status())).Inc()
	return r
}

// errorType classifies a send failure for the logs.
func errorType(err error) string {
	var pe *domain.ProviderError
	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.As(err, &pe):
		return "provider_error"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &urlErr):
		return "network_error"
	default:
		return fmt.Sprintf("%T", err)
	}
}
