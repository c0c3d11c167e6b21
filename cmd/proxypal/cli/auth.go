package cli

import "github.com/spf13/cobra"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage provider credentials",
	Long: `Add, import, list and remove the credentials the proxy uses.

Credentials are stored as JSON files in the auth directory
(~/.cli-proxy-api by default, or auth_dir in ~/.config/proxypal/config.yaml,
or $PROXYPAL_AUTH_DIR). Files are never edited in place: adding a credential
writes a new file, and removing deletes every file of a provider.

Subcommands:
  add         Add a credential with an API key, a file or OAuth device code
  import      Import credential files from a file or directory
  list        List stored credentials
  remove      Remove all credentials of a provider
  providers   List supported providers and their methods`,
}

func init() {
	rootCmd.AddCommand(authCmd)
}
