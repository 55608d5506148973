package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds rentbill metrics. It is separate from the default registry so the
// textfile export carries billing series only.
var Registry = prometheus.NewRegistry()

// Messaging provider Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentbill",
			Name:      "provider_requests_total",
			Help:      "Total number of messaging provider requests",
		},
		[]string{"provider", "operation", "status"}, // operation: balance / send
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rentbill",
			Name:      "provider_request_duration_seconds",
			Help:      "Messaging provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "operation"},
	)

	SMSRecipientsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentbill",
			Name:      "sms_recipients_total",
			Help:      "SMS recipients by provider delivery status",
		},
		[]string{"provider", "status"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rentbill",
			Name:      "notifications_total",
			Help:      "Bill notifications by outcome",
		},
		[]string{"status"}, // sent / skipped / failed
	)
)

// Billing metrics.
var (
	BillsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rentbill",
			Name:      "bills_generated_total",
			Help:      "Receipts written to disk",
		},
	)

	BillAmount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "rentbill",
			Name:      "bill_amount",
			Help:      "Amounts of the last generated bill",
		},
		[]string{"component"}, // rent / water / total
	)

	WaterUsageCubicMeters = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "rentbill",
			Name:      "water_usage_cubic_meters",
			Help:      "Metered water usage of the last generated bill",
		},
	)
)

var registerOnce sync.Once

// Register adds all rentbill metrics to Registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		Registry.MustRegister(
			ProviderRequestsTotal,
			ProviderRequestDuration,
			SMSRecipientsTotal,
			NotificationsTotal,
			BillsGeneratedTotal,
			BillAmount,
			WaterUsageCubicMeters,
		)
	})
}
