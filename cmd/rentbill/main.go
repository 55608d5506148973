package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/app"
	"github.com/kailas-cloud/rentbill/internal/config"
	"github.com/kailas-cloud/rentbill/internal/console"
	"github.com/kailas-cloud/rentbill/internal/domain/bill"
	logpkg "github.com/kailas-cloud/rentbill/internal/logger"
	"github.com/kailas-cloud/rentbill/internal/metrics"
	"github.com/kailas-cloud/rentbill/internal/repository/billfile"
	"github.com/kailas-cloud/rentbill/internal/transport/africastalking"
	"github.com/kailas-cloud/rentbill/internal/usecase/billing"
	"github.com/kailas-cloud/rentbill/internal/usecase/intake"
	"github.com/kailas-cloud/rentbill/internal/usecase/setup"
	"github.com/kailas-cloud/rentbill/internal/version"
)

type options struct {
	env        string
	configPath string
	billsDir   string
}

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nInterrupted")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(exitCode(err))
}

// exitCode maps a run error to the process status; an interrupted run exits
// like a shell job stopped by SIGINT.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "rentbill",
		Short:         "Generate a monthly rent and water bill and text it to the tenant",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.env, "env", "", "config environment (default $ENV or \"local\")")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML config file, overrides --env lookup")
	cmd.Flags().StringVar(&opts.billsDir, "bills-dir", "", "directory receipts are written to")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(version.String())
		},
	})

	return cmd
}

func run(parent context.Context, opts options) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	env := opts.env
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.billsDir != "" {
		cfg.Billing.BillsDir = opts.billsDir
	}

	base, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = base.Sync() }()
	runCtx, logger := logpkg.StartRun(parent, base)

	logger.Info("Starting rentbill",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("bills_dir", cfg.Billing.BillsDir),
	)

	metrics.Register()
	if cfg.Metrics.Textfile != "" {
		defer func() {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				logger.Error("Failed to write metrics textfile", zap.Error(err))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(runCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tariff := bill.Tariff{
		WaterRate:     decimal.NewFromFloat(cfg.Billing.WaterRate),
		PaybillNumber: cfg.Billing.PaybillNumber,
		AccountPrefix: cfg.Billing.AccountPrefix,
		Currency:      cfg.Billing.Currency,
	}

	con := console.New(os.Stdin, os.Stdout)
	setupSvc := setup.New(con, providerFactory(cfg.Messaging, logger), logger).
		WithPreset(cfg.Messaging.Username, cfg.Messaging.APIKey)
	intakeSvc := intake.New(con, logger)
	billingSvc := billing.New(tariff, billfile.New(cfg.Billing.BillsDir), logger)

	outcome, err := app.New(setupSvc, intakeSvc, billingSvc, con, logger).Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("Billing run interrupted", zap.Error(err))
		} else {
			logger.Error("Billing run failed", zap.Error(err))
		}
		return err
	}

	logger.Info("Billing run completed",
		zap.String("path", outcome.Statement.Path),
		zap.String("notification", string(outcome.Notification.Status())),
	)
	return nil
}

// providerFactory builds Africa's Talking clients from the messaging settings.
func providerFactory(cfg config.MessagingConfig, logger *zap.Logger) setup.ProviderFactory {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if cfg.TimeoutSec < 0 {
		timeout = 0
	}
	return func(creds setup.Credentials) (setup.Provider, error) {
		client, err := africastalking.NewClient(&africastalking.Config{
			Username: creds.Username,
			APIKey:   creds.APIKey,
			SenderID: cfg.SenderID,
			BaseURL:  cfg.BaseURL,
			Timeout:  timeout,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
