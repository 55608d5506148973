package billing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	"github.com/kailas-cloud/rentbill/internal/metrics"
)

// Statement is a calculated bill, its receipt and where the receipt was saved.
type Statement struct {
	Bill    bill.Bill
	Receipt string
	Path    string
}

// Service turns tenant inputs into a saved receipt.
type Service struct {
	tariff bill.Tariff
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// New creates a Service that stamps bills with the wall clock.
func New(tariff bill.Tariff, store Store, logger *zap.Logger) *Service {
	return &Service{tariff: tariff, store: store, now: time.Now, logger: logger}
}

// WithClock overrides the clock that names the billing period.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Generate calculates the bill, renders the receipt and saves it.
func (s *Service) Generate(ctx context.Context, t bill.Tenant) (Statement, error) {
	b := bill.Calculate(t, s.tariff).Issue(s.now())
	if b.WaterUsage.IsNegative() {
		s.logger.Warn("Current meter reading is below the previous one",
			zap.String("apartment", b.Apartment),
			zap.String("previous", b.PreviousReading.String()),
			zap.String("current", b.CurrentReading.String()),
		)
	}

	receipt := b.Receipt()
	path, err := s.store.Save(ctx, b.FileName(), []byte(receipt))
	if err != nil {
		return Statement{}, fmt.Errorf("save bill: %w", err)
	}

	metrics.BillsGeneratedTotal.Inc()
	metrics.BillAmount.WithLabelValues("rent").Set(b.Rent.InexactFloat64())
	metrics.BillAmount.WithLabelValues("water").Set(b.WaterBill.InexactFloat64())
	metrics.BillAmount.WithLabelValues("total").Set(b.Total.InexactFloat64())
	metrics.WaterUsageCubicMeters.Set(b.WaterUsage.InexactFloat64())

	s.logger.Info("Bill generated",
		zap.String("apartment", b.Apartment),
		zap.String("period", b.Period()),
		zap.String("water_usage", b.Usage()),
		zap.String("total", b.Amount(b.Total)),
		zap.String("path", path),
	)

	return Statement{Bill: b, Receipt: receipt, Path: path}, nil
}
