package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vibetank/vibetank/internal/observability"
)

var (
	resetYes bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the persisted site content from every backend",
	Long: `Clear the local slot and the remote document. The next start serves the
built-in defaults. Requires --yes.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Confirm deleting all saved content")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		return errors.New("refusing to reset without --yes")
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	report := a.store.Reset(cmd.Context())
	observability.NewPrinter(cmd.OutOrStdout()).PrintResetReport(report)
	return nil
}
