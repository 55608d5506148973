// Package app runs one billing session end to end:
// credential setup, intake, calculation and receipt, then the optional SMS.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	"github.com/kailas-cloud/rentbill/internal/domain/notification"
	"github.com/kailas-cloud/rentbill/internal/logger"
	"github.com/kailas-cloud/rentbill/internal/usecase/billing"
	"github.com/kailas-cloud/rentbill/internal/usecase/notify"
)

// Setup picks the notifier for the run.
type Setup interface {
	Run(ctx context.Context) (notify.Notifier, error)
}

// Intake collects the tenant's inputs.
type Intake interface {
	Collect(ctx context.Context) (bill.Tenant, error)
}

// Billing calculates, renders and saves the bill.
type Billing interface {
	Generate(ctx context.Context, t bill.Tenant) (billing.Statement, error)
}

// Printer shows status lines to the operator.
type Printer interface {
	Printf(format string, args ...any)
}

// Outcome is what one run produced.
type Outcome struct {
	RunID        string
	Statement    billing.Statement
	Notification notification.Result
}

// App wires the billing steps together.
type App struct {
	setup   Setup
	intake  Intake
	billing Billing
	out     Printer
	logger  *zap.Logger
}

// New creates an App.
func New(setup Setup, intake Intake, billing Billing, out Printer, logger *zap.Logger) *App {
	return &App{setup: setup, intake: intake, billing: billing, out: out, logger: logger}
}

// Run executes setup, intake, billing and notification once.
// It fails when the run is interrupted or no bill could be saved; notification
// problems are reported in the Outcome.
func (a *App) Run(ctx context.Context) (Outcome, error) {
	if logger.RunID(ctx) == "" {
		ctx, _ = logger.StartRun(ctx, a.logger)
	} else {
		ctx = logger.ContextWithLogger(ctx, a.logger)
	}

	notifier, err := a.setup.Run(ctx)
	if err != nil {
		return Outcome{}, err
	}

	tenant, err := a.intake.Collect(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("collect tenant: %w", err)
	}

	st, err := a.billing.Generate(ctx, tenant)
	if err != nil {
		return Outcome{}, fmt.Errorf("generate bill: %w", err)
	}
	a.out.Printf("\nBill has been saved to: %s\n", st.Path)

	res := notifier.Notify(ctx, st.Bill)
	a.report(res, st.Bill)

	return Outcome{RunID: logger.RunID(ctx), Statement: st, Notification: res}, nil
}

func (a *App) report(res notification.Result, b bill.Bill) {
	switch res.Status() {
	case notification.StatusSent:
		a.out.Printf("SMS sent to %s: %s\n", b.Phone, res.Delivery().Summary)
		a.logger.Info("Bill notification sent", zap.String("phone", b.Phone))
	case notification.StatusFailed:
		a.out.Printf("SMS could not be sent: %v\n", res.Err())
		a.logger.Warn("Bill notification failed, bill is saved", zap.Error(res.Err()))
	default:
		a.out.Printf("SMS skipped: %v\n", res.Err())
		a.logger.Info("Bill notification skipped", zap.NamedError("reason", res.Err()))
	}
}
