package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/information-sharing-networks/docusign-client/internal/config"
	"github.com/information-sharing-networks/docusign-client/internal/logger"
	"github.com/information-sharing-networks/docusign-client/internal/version"
	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands of one CLI invocation
type app struct {
	// overrides are the DocuSign settings given as flags, they take priority over DOCUSIGN_* variables
	overrides docusign.Config

	cfg    *config.CLIEnvironment
	logger *slog.Logger
}

// NewRootCmd returns the docusign command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:               "docusign",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "DocuSign eSignature REST API CLI",
		Long: `Command line client for the DocuSign eSignature REST API (v2).

Credentials are read from the DOCUSIGN_* environment variables (DOCUSIGN_ROOT_URL,
DOCUSIGN_USERNAME, DOCUSIGN_PASSWORD, DOCUSIGN_INTEGRATOR_KEY, DOCUSIGN_ACCOUNT_ID,
DOCUSIGN_OAUTH2_TOKEN...) and can be overridden with flags.

Results are written to stdout as JSON, logs are written to stderr.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a.cfg, err = config.NewCLIConfig()
			if err != nil {
				return err
			}

			a.logger = logger.NewLogger(cmd.ErrOrStderr(), logger.ParseLogLevel(a.cfg.LogLevel), a.cfg.Environment)
			slog.SetDefault(a.logger)
			return nil
		},
	}

	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.overrides.RootURL, "root-url", "", "DocuSign API root URL (DOCUSIGN_ROOT_URL)")
	flags.StringVar(&a.overrides.Username, "username", "", "API username (DOCUSIGN_USERNAME)")
	flags.StringVar(&a.overrides.Password, "password", "", "API password (DOCUSIGN_PASSWORD)")
	flags.StringVar(&a.overrides.IntegratorKey, "integrator-key", "", "integrator key (DOCUSIGN_INTEGRATOR_KEY)")
	flags.StringVar(&a.overrides.AccountID, "account-id", "", "account id, discovered with login information when not set (DOCUSIGN_ACCOUNT_ID)")
	flags.StringVar(&a.overrides.OAuth2Token, "oauth2-token", "", "OAuth2 access token, used instead of the username and password (DOCUSIGN_OAUTH2_TOKEN)")
	flags.DurationVar(&a.overrides.Timeout, "timeout", 0, "timeout of each API call, e.g 30s (DOCUSIGN_TIMEOUT)")

	rootCmd.AddCommand(
		newLoginCmd(a),
		newAccountCmd(a),
		newEnvelopeCmd(a),
		newTemplateCmd(a),
		newOAuthCmd(a),
		newCallbackCmd(a),
		newDemoCmd(a),
		NewKeygenCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// client returns a DocuSign client configured from the environment and the global flags
func (a *app) client() (*docusign.Client, error) {
	cfg, err := docusign.ConfigFromEnviron()
	if err != nil {
		return nil, err
	}
	cfg = cfg.WithOverrides(a.overrides)

	a.logger.Debug("docusign client configuration",
		slog.String("root_url", cfg.RootURL),
		slog.String("account_id", cfg.AccountID),
		slog.Bool("oauth2", cfg.OAuth2Token != ""),
		slog.Duration("timeout", cfg.Timeout))

	return docusign.NewClient(cfg, docusign.WithLogger(a.logger))
}

// writeJSON writes v to the command output as indented JSON
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
