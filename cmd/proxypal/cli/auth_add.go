package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proxypal/proxypal/internal/auth"
	"github.com/proxypal/proxypal/internal/log"
	"github.com/proxypal/proxypal/internal/provider"
	"github.com/proxypal/proxypal/internal/provider/util"
)

var (
	addProvider   string
	addAPIKey     string
	addFromEnv    bool
	addFile       string
	addDeviceCode bool
	addClientID   string
	addScope      string
)

var authAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a provider credential",
	Long: `Add a credential for a provider using exactly one method:

  --api-key KEY     store an API key (use "-" to read it from stdin)
  --from-env        store the API key found in the provider's usual env var
  --file PATH       import a credential file for any provider (JSON is copied
                    as is, YAML and .env files contribute their key; service
                    account JSON is stored for vertex)
  --device-code     sign in through the OAuth device authorization flow

Without --provider, or without a method flag, the missing choices are
prompted for interactively.

The OAuth client id is taken from --client-id, then $PROXYPAL_OAUTH_CLIENT_ID,
then oauth.client_ids.<provider> in the config file.

Examples:
  proxypal auth add                                        # Interactive
  proxypal auth add --provider gemini --api-key AIza...    # Gemini API key
  echo "$KEY" | proxypal auth add --provider claude --api-key -
  proxypal auth add --provider openai --from-env           # Uses $OPENAI_API_KEY
  proxypal auth add --provider vertex --file sa.json       # Service account
  proxypal auth add --provider copilot --device-code       # GitHub sign-in`,
	Args: cobra.NoArgs,
	RunE: runAuthAdd,
}

func init() {
	authCmd.AddCommand(authAddCmd)
	authAddCmd.Flags().StringVarP(&addProvider, "provider", "p", "", "provider id (see 'proxypal auth providers')")
	authAddCmd.Flags().StringVar(&addAPIKey, "api-key", "", "API key, or - to read from stdin")
	authAddCmd.Flags().BoolVar(&addFromEnv, "from-env", false, "read the API key from the provider's environment variables")
	authAddCmd.Flags().StringVarP(&addFile, "file", "f", "", "credential file to import")
	authAddCmd.Flags().BoolVar(&addDeviceCode, "device-code", false, "use the OAuth device code flow")
	authAddCmd.Flags().StringVar(&addClientID, "client-id", "", "OAuth client id for --device-code")
	authAddCmd.Flags().StringVar(&addScope, "scope", "", "OAuth scope override for --device-code")
}

// flagMethod returns the method selected by flags, or 0 when none is set.
func flagMethod() (provider.Method, error) {
	var m provider.Method
	n := 0
	if addAPIKey != "" {
		m = provider.MethodAPIKey
		n++
	}
	if addFromEnv {
		m = provider.MethodAPIKey
		n++
	}
	if addFile != "" {
		m = provider.MethodFileImport
		n++
	}
	if addDeviceCode {
		m = provider.MethodDeviceCode
		n++
	}
	if n > 1 {
		return 0, fmt.Errorf("use only one of --api-key, --from-env, --file and --device-code")
	}
	return m, nil
}

func runAuthAdd(cmd *cobra.Command, args []string) error {
	method, err := flagMethod()
	if err != nil {
		return err
	}

	req := auth.Request{Provider: addProvider, Method: method, File: addFile}
	if addAPIKey != "" {
		if req.APIKey, err = readAPIKeyArg(addAPIKey, cmd.InOrStdin()); err != nil {
			return err
		}
	}
	if addFromEnv {
		if req.APIKey, err = apiKeyFromEnv(addProvider); err != nil {
			return err
		}
	}

	if req.Provider == "" || req.Method == 0 {
		if !stdinIsTerminal() {
			return fmt.Errorf("--provider and one of --api-key, --file or --device-code are required when stdin is not a terminal")
		}
		p := &util.Prompter{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
		if err := completeInteractively(p, &req); err != nil {
			return err
		}
	}

	if req.Method == provider.MethodDeviceCode {
		req.ClientID = resolveClientID(addClientID, req.Provider)
		req.Scope = resolveScope(addScope, req.Provider)
	}

	res := newManager(cmd.ErrOrStderr()).Add(cmd.Context(), req)
	if jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), addResultJSON(res)); err != nil {
			return err
		}
	} else if res.OK {
		res.Panel().Print(cmd.OutOrStdout())
	} else {
		res.Panel().Print(cmd.ErrOrStderr())
	}
	if !res.OK {
		return errReported
	}
	return nil
}

// apiKeyFromEnv returns the first API key set in the provider's conventional
// environment variables.
func apiKeyFromEnv(providerID string) (string, error) {
	if providerID == "" {
		return "", fmt.Errorf("--from-env requires --provider")
	}
	e, err := provider.MustLookup(providerID)
	if err != nil {
		return "", err
	}
	if len(e.EnvVars) == 0 {
		return "", fmt.Errorf("provider %s has no API key environment variables", e.ID)
	}
	key, name := util.FirstEnv(e.EnvVars...)
	if key == "" {
		return "", fmt.Errorf("none of %s is set", strings.Join(e.EnvVars, ", "))
	}
	log.Debug("API key read from environment", "provider", e.ID, "var", name)
	return key, nil
}

type addJSON struct {
	OK       bool     `json:"ok"`
	Provider string   `json:"provider"`
	Method   string   `json:"method,omitempty"`
	Path     string   `json:"path,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
	Kind     string   `json:"error_kind,omitempty"`
}

func addResultJSON(r auth.Result) addJSON {
	out := addJSON{OK: r.OK, Provider: r.Provider, Path: r.Path, Warnings: r.Warnings}
	if r.Method != 0 {
		out.Method = r.Method.String()
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
		out.Kind = auth.Kind(r.Err).String()
	}
	return out
}

// completeInteractively prompts for whatever req is missing: the provider,
// the method, and the key or file the method needs.
func completeInteractively(p *util.Prompter, req *auth.Request) error {
	var entry provider.Entry
	if req.Provider == "" {
		e, err := selectProvider(p)
		if err != nil {
			return err
		}
		entry = e
		req.Provider = e.ID
	} else {
		e, err := provider.MustLookup(req.Provider)
		if err != nil {
			return err
		}
		entry = e
	}

	if req.Method == 0 {
		m, err := selectMethod(p, entry)
		if err != nil {
			return err
		}
		req.Method = m
	}

	switch req.Method {
	case provider.MethodAPIKey:
		if req.APIKey != "" {
			return nil
		}
		fmt.Fprintf(p.Out, "\nEnter API key for %s\n", entry.Name)
		if entry.ConsoleURL != "" {
			fmt.Fprintf(p.Out, "(Get your key from: %s)\n\n", entry.ConsoleURL)
		}
		key, err := p.Secret("API key")
		if err != nil {
			return err
		}
		req.APIKey = key
	case provider.MethodFileImport:
		if req.File != "" {
			return nil
		}
		fmt.Fprintf(p.Out, "\nEnter path to %s credential file\n", entry.Name)
		path, err := p.Line("File path")
		if err != nil {
			return err
		}
		req.File = util.ExpandHome(path)
	}
	return nil
}

func selectProvider(p *util.Prompter) (provider.Entry, error) {
	entries := provider.Catalog()
	options := make([]string, len(entries))
	for i, e := range entries {
		options[i] = fmt.Sprintf("%s - %s [%s]", e.Name, e.Description, provider.FormatMethods(e))
	}
	fmt.Fprintln(p.Out)
	i, err := p.Choice("Select AI provider:", options)
	if err != nil {
		return provider.Entry{}, err
	}
	log.Debug("provider selected", "provider", entries[i].ID)
	return entries[i], nil
}

var methodPrompts = map[provider.Method]string{
	provider.MethodDeviceCode: "OAuth Device Code (recommended, sign in through the browser)",
	provider.MethodAPIKey:     "API Key (paste a key from the provider console)",
	provider.MethodFileImport: "File Import (service account JSON)",
}

// selectMethod asks for a method, choosing silently when only one applies.
func selectMethod(p *util.Prompter, e provider.Entry) (provider.Method, error) {
	methods := e.MethodList()
	switch len(methods) {
	case 0:
		return 0, fmt.Errorf("provider %s has no supported auth methods", e.ID)
	case 1:
		log.Info("only one auth method available", "provider", e.ID, "method", methods[0].String())
		return methods[0], nil
	}

	options := make([]string, len(methods))
	for i, m := range methods {
		options[i] = methodPrompts[m]
	}
	fmt.Fprintln(p.Out)
	i, err := p.Choice(fmt.Sprintf("Select authentication method for %s:", e.Name), options)
	if err != nil {
		return 0, err
	}
	return methods[i], nil
}
