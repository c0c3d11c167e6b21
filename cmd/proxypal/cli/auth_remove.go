package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/provider/util"
	"github.com/proxypal/proxypal/internal/ui"
)

var (
	removeProvider string
	removeYes      bool
)

var authRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove all credentials of a provider",
	Long: `Delete every credential file of a provider from the auth directory.

When stdin is a terminal the number of files is shown and confirmation is
asked first; --yes skips the question.

Examples:
  proxypal auth remove --provider gemini
  proxypal auth remove --provider copilot --yes`,
	Args: cobra.NoArgs,
	RunE: runAuthRemove,
}

func init() {
	authCmd.AddCommand(authRemoveCmd)
	authRemoveCmd.Flags().StringVarP(&removeProvider, "provider", "p", "", "provider whose credentials to remove (required)")
	authRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "do not ask for confirmation")
	_ = authRemoveCmd.MarkFlagRequired("provider")
}

func runAuthRemove(cmd *cobra.Command, args []string) error {
	m := newManager(cmd.ErrOrStderr())

	if !removeYes && stdinIsTerminal() {
		entries, err := m.List(removeProvider)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			p := &util.Prompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			ok, err := p.Confirm(fmt.Sprintf("Remove %d credential(s) for %s?", len(entries), provider.Normalize(removeProvider)))
			if err != nil {
				return err
			}
			if !ok {
				ui.Info("Aborted.")
				return nil
			}
		}
	}

	n, err := m.Remove(removeProvider)
	if err != nil {
		return err
	}
	id := provider.Normalize(removeProvider)
	if n == 0 {
		ui.Warnf("no credentials found for provider %s", id)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d credential(s) for %s\n", n, id)
	return nil
}
