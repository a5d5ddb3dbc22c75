package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	passwdClear bool
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set or clear the admin passphrase override",
	Long: `Read a new admin passphrase from the first line of stdin and store its hash
in the local slot store. It replaces ADMIN_PASSWORD until cleared with --clear.`,
	Args: cobra.NoArgs,
	RunE: runPasswd,
}

func init() {
	passwdCmd.Flags().BoolVar(&passwdClear, "clear", false, "Remove the override so ADMIN_PASSWORD applies again")
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if passwdClear {
		if err := a.passphrase.ClearOverride(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Passphrase override cleared")
		return nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return errors.New("no passphrase given on stdin")
	}
	passphrase := strings.TrimRight(line, "\r\n")
	if len(passphrase) < 8 {
		return errors.New("passphrase must be at least 8 characters")
	}

	if err := a.passphrase.SetOverride(ctx, passphrase); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Passphrase override stored")
	return nil
}
