// Package cli implements the proxypal command-line interface using Cobra.
// It provides commands for adding, importing, listing and removing the
// provider credentials the proxy reads from its auth directory.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/proxypal/proxypal/internal/config"
	"github.com/proxypal/proxypal/internal/log"
	"github.com/proxypal/proxypal/internal/ui"
)

var (
	verbosity int
	quiet     bool
	jsonOut   bool

	globalCfg = config.DefaultGlobalConfig()
)

// errReported is returned by commands that already rendered their failure,
// so Execute only sets the exit status.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   "proxypal",
	Short: "ProxyPal - credential manager for the AI API proxy",
	Long: `ProxyPal manages the credentials an AI API proxy uses to reach
upstream providers: API keys, OAuth device-code tokens and service
account files, stored as plain JSON files in a per-user directory.

Run 'proxypal auth providers' to see which providers and methods are
supported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadGlobal()
		if err != nil {
			ui.Warnf("%v (using defaults)", err)
			cfg = config.DefaultGlobalConfig()
		}
		globalCfg = cfg

		ui.SetQuiet(quiet)
		if err := log.Init(log.Options{
			Verbosity:     verbosity,
			Quiet:         quiet,
			JSONFormat:    jsonOut,
			DebugDir:      config.DebugDir(),
			RetentionDays: cfg.Debug.RetentionDays,
			Stderr:        cmd.ErrOrStderr(),
		}); err != nil {
			// Non-fatal: fall back to stderr-only logging.
			ui.Warnf("failed to initialize debug logging: %v", err)
		}
		return nil
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context, which aborts a device-code poll without writing anything.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	log.Close()
	if err != nil && !errors.Is(err, errReported) {
		ui.Error(err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "verbose output (repeat for debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}
