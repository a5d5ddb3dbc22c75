package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vibetank/vibetank/internal/observability"
)

// errInvalidBackup is returned when a backup file fails validation.
var errInvalidBackup = errors.New("invalid backup file")

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the site content with a backup file and save it",
	Long: `Validate a backup JSON file, adopt its fields and save the result to every
configured backend. Fields missing from the file keep their current values.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	// fields absent from the backup keep the persisted values
	a.store.Load(ctx)

	if !a.store.Import(raw) {
		return fmt.Errorf("%s: %w", args[0], errInvalidBackup)
	}

	report, err := a.store.Save(ctx)
	observability.NewPrinter(cmd.OutOrStdout()).PrintSaveReport(report)
	return err
}
