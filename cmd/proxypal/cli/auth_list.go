package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listProvider string

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored credentials",
	Long: `List the credential files in the auth directory.

Shows the provider, file name, credential type and when each file was
last modified.

Examples:
  proxypal auth list                    # All credentials
  proxypal auth list --provider gemini  # Only Gemini
  proxypal auth list --json             # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runAuthList,
}

func init() {
	authCmd.AddCommand(authListCmd)
	authListCmd.Flags().StringVarP(&listProvider, "provider", "p", "", "only list this provider")
}

type listJSON struct {
	Provider string `json:"provider"`
	File     string `json:"file"`
	Path     string `json:"path"`
	Type     string `json:"type"`
	Modified string `json:"modified"`
}

func runAuthList(cmd *cobra.Command, args []string) error {
	entries, err := newManager(cmd.ErrOrStderr()).List(listProvider)
	if err != nil {
		return fmt.Errorf("listing credentials: %w", err)
	}
	w := cmd.OutOrStdout()

	if jsonOut {
		out := make([]listJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, listJSON{
				Provider: e.Provider,
				File:     e.Name,
				Path:     e.Path,
				Type:     string(e.Format),
				Modified: e.ModTime.Format(time.RFC3339),
			})
		}
		return writeJSON(w, out)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No credentials configured.")
		fmt.Fprintln(w, "\nAdd credentials with:")
		fmt.Fprintln(w, "  proxypal auth add --provider gemini --api-key YOUR_KEY")
		fmt.Fprintln(w, "  proxypal auth add --provider vertex --file service-account.json")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tFILE\tTYPE\tMODIFIED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Provider, e.Name, e.Format, e.ModTime.Local().Format("2006-01-02 15:04"))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d credential(s)\n", len(entries))
	return nil
}
