package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/ui"
)

var authProvidersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported providers",
	Long: `List every provider credentials can be added for, with the methods
each accepts and the environment variables recognised on import.`,
	Args: cobra.NoArgs,
	RunE: runAuthProviders,
}

func init() {
	authCmd.AddCommand(authProvidersCmd)
}

type providerJSON struct {
	ID          string   `json:"provider"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Methods     []string `json:"methods"`
	ConsoleURL  string   `json:"console_url,omitempty"`
	EnvVars     []string `json:"env_vars,omitempty"`
}

func runAuthProviders(cmd *cobra.Command, args []string) error {
	entries := provider.Catalog()
	w := cmd.OutOrStdout()

	if jsonOut {
		out := make([]providerJSON, 0, len(entries))
		for _, e := range entries {
			var methods []string
			for _, m := range e.MethodList() {
				methods = append(methods, m.String())
			}
			out = append(out, providerJSON{
				ID:          e.ID,
				Name:        e.Name,
				Description: e.Description,
				Methods:     methods,
				ConsoleURL:  e.ConsoleURL,
				EnvVars:     e.EnvVars,
			})
		}
		return writeJSON(w, out)
	}

	ui.Section(w, "Supported providers")
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "PROVIDER\tNAME\tMETHODS\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Name, provider.FormatMethods(e), e.Description)
	}
	tw.Flush()

	fmt.Fprintln(w)
	ui.Section(w, "Aliases")
	fmt.Fprintln(w, aliasList())
	return nil
}

func aliasList() string {
	aliases := provider.Aliases()
	pairs := make([]string, len(aliases))
	for i, a := range aliases {
		pairs[i] = a + " → " + provider.Normalize(a)
	}
	return strings.Join(pairs, ", ")
}
