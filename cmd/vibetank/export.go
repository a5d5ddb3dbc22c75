package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the site content as a backup JSON file",
	Long: `Load the persisted site content and write it as a backup document.

Without --out the JSON goes to stdout. When --out names a directory the file
is created there as vibetank-backup-YYYY-MM-DD.json.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file or directory (default stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	a.store.Load(ctx)

	body, err := a.store.Export()
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), body)
		return err
	}

	path := exportOut
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, a.store.ExportFilename())
	}
	if err := os.WriteFile(path, []byte(body+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
