package notify

import (
	"context"

	"github.com/kailas-cloud/rentbill/internal/domain"
	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	"github.com/kailas-cloud/rentbill/internal/domain/notification"
	"github.com/kailas-cloud/rentbill/internal/metrics"
)

// Disabled is the Notifier used when messaging was skipped or failed to set up.
type Disabled struct {
	reason error
}

// NewDisabled creates a Disabled notifier. reason may be nil.
func NewDisabled(reason error) *Disabled {
	return &Disabled{reason: reason}
}

// Reason explains why messaging is off.
func (d *Disabled) Reason() error {
	if d.reason == nil {
		return domain.ErrMessagingDisabled
	}
	return d.reason
}

// Notify always skips.
func (d *Disabled) Notify(_ context.Context, _ bill.Bill) notification.Result {
	metrics.NotificationsTotal.WithLabelValues(string(notification.StatusSkipped)).Inc()
	return notification.NewSkipped(d.Reason())
}
