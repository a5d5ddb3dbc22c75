package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vibetank/vibetank/internal/db"
	"github.com/vibetank/vibetank/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where content loads from and summarize it",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report := a.store.Load(ctx)

	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintLoadReport(report)
	printer.PrintBackends(a.backendDetails(ctx))
	printer.PrintStatus(a.store.Status(), a.store.Snapshot())
	return nil
}

// backendDetails collects storage locations and admin state. Lookup
// failures are logged and leave the matching field at its zero value.
func (a *app) backendDetails(ctx context.Context) observability.BackendDetails {
	details := observability.BackendDetails{
		LocalPath:       a.local.Path(),
		RemoteConnected: a.remote != nil,
		AdminEnabled:    a.cfg.AdminPassword != "",
	}

	if a.remote != nil {
		updatedAt, err := a.remote.DocumentUpdatedAt(ctx, db.MainDocumentID)
		if err != nil {
			a.logger.Warn("failed to read remote document timestamp", zap.Error(err))
		}
		details.RemoteUpdatedAt = updatedAt
	}

	override, err := a.passphrase.HasOverride(ctx)
	if err != nil {
		a.logger.Warn("failed to read passphrase override", zap.Error(err))
	}
	details.PassphraseOverride = override
	return details
}
