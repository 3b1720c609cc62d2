package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <account-id> <contract-id>",
	Short: "Download a contract's cost export",
	Args:  cobra.ExactArgs(2),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "",
		"Output file (default <account-id>_<contract-id> with the backend's file extension; - for stdout)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	accountID, contractID := args[0], args[1]
	exp, err := newClient(loadConfig()).ExportContract(ctx, accountID, contractID)
	if err != nil {
		return fmt.Errorf("exporting contract: %w", err)
	}

	out := flagExportOut
	if out == "" {
		out = exportFilename(accountID, contractID, exp.Ext())
	}
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(exp.Data)
		return err
	}

	if err := os.WriteFile(out, exp.Data, 0o600); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Wrote %d bytes to %s\n", len(exp.Data), out)
	return nil
}

// exportFilename builds a file name in the working directory from route IDs.
func exportFilename(accountID, contractID, ext string) string {
	return safeName(accountID) + "_" + safeName(contractID) + ext
}

// safeName replaces anything outside [A-Za-z0-9._-] with an underscore and
// strips leading dots, so the result never names another directory.
func safeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, s)
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return "_"
	}
	return s
}
