package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proxypal/proxypal/internal/auth"
)

var importProvider string

var authImportCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Import credential files",
	Long: `Import credentials from a file, or from every .json, .yaml, .yml and
.env file directly inside a directory.

The provider is read from the file's "provider" field, matched from a known
environment variable name (OPENAI_API_KEY, ...) or inferred from the key's
prefix. Use --provider when it cannot be detected. Google service account
files are stored as vertex credentials.

Each file is imported independently; a summary lists what succeeded and
what failed. The command exits non-zero when any file failed.

Examples:
  proxypal auth import ~/keys/claude.json
  proxypal auth import ./credentials/
  proxypal auth import keys.env --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthImport,
}

func init() {
	authCmd.AddCommand(authImportCmd)
	authImportCmd.Flags().StringVarP(&importProvider, "provider", "p", "", "store every imported credential under this provider")
}

type importJSON struct {
	Path     string `json:"path"`
	OK       bool   `json:"ok"`
	Provider string `json:"provider,omitempty"`
	Stored   string `json:"stored,omitempty"`
	Message  string `json:"message"`
}

func runAuthImport(cmd *cobra.Command, args []string) error {
	results, err := newManager(cmd.ErrOrStderr()).Import(args[0], importProvider)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
		}
	}

	if jsonOut {
		out := make([]importJSON, 0, len(results))
		for _, r := range results {
			out = append(out, importJSON{Path: r.Path, OK: r.OK, Provider: r.Provider, Stored: r.Stored, Message: r.Message})
		}
		if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), auth.ImportSummary(results))
	}

	if failed > 0 {
		return errReported
	}
	return nil
}
