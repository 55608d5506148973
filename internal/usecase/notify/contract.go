package notify

import (
	"context"

	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	"github.com/kailas-cloud/rentbill/internal/domain/notification"
)

// Notifier tells a tenant about their bill. Notify never fails the run: every
// outcome, including provider errors, comes back as a Result.
type Notifier interface {
	Notify(ctx context.Context, b bill.Bill) notification.Result
}

// Sender submits one SMS to the provider.
type Sender interface {
	SendSMS(ctx context.Context, message string, recipients []string) (notification.Delivery, error)
}
