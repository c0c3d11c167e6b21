package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/proxypal/proxypal/internal/auth"
	"github.com/proxypal/proxypal/internal/credential"
	"github.com/proxypal/proxypal/internal/log"
	"github.com/proxypal/proxypal/internal/provider/util"
	"github.com/proxypal/proxypal/internal/ui"
)

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool { return ui.IsTerminal(os.Stdin) }

// newManager opens the credential store from the loaded config.
func newManager(out io.Writer) *auth.Manager {
	store := credential.NewFileStore(globalCfg.AuthDir)
	log.Debug("using credential store", "dir", store.Dir())
	m := auth.NewManager(store)
	m.Out = out
	return m
}

// resolveClientID picks the OAuth client id: flag, then the environment,
// then the per-provider config value.
func resolveClientID(flag, providerID string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	return globalCfg.ClientID(providerID)
}

func resolveScope(flag, providerID string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	return globalCfg.Scope(providerID)
}

// readAPIKeyArg returns val, or the first line of in when val is "-".
func readAPIKeyArg(val string, in io.Reader) (string, error) {
	if val != "-" {
		return val, nil
	}
	p := &util.Prompter{In: in, Out: io.Discard}
	key, err := p.Line("")
	if err != nil {
		return "", fmt.Errorf("reading API key from stdin: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("no API key on stdin")
	}
	return key, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
