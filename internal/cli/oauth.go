package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/information-sharing-networks/docusign-client/internal/crypto"
	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/spf13/cobra"
)

func newOAuthCmd(a *app) *cobra.Command {
	oauthCmd := &cobra.Command{
		Use:   "oauth",
		Short: "Request and revoke OAuth2 access tokens",
		Long: `Request and revoke OAuth2 access tokens.

Pass the returned access token with --oauth2-token (or DOCUSIGN_OAUTH2_TOKEN) to
authenticate the next commands with it.`,
	}
	oauthCmd.AddCommand(
		&cobra.Command{
			Use:   "token",
			Short: "Exchange the username, password and integrator key for an access token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				token, err := client.OAuth2TokenRequest(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd, token)
			},
		},
		&cobra.Command{
			Use:   "revoke TOKEN",
			Short: "Revoke an access token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := a.client()
				if err != nil {
					return err
				}
				if err := client.OAuth2TokenRevoke(cmd.Context(), args[0]); err != nil {
					return err
				}
				return writeJSON(cmd, map[string]bool{"revoked": true})
			},
		},
		newOAuthJWTCmd(a),
	)
	return oauthCmd
}

func newOAuthJWTCmd(a *app) *cobra.Command {
	var (
		grant          docusign.JWTGrant
		privateKeyFile string
	)
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Request an access token with the JWT grant",
		Long: `Request an access token impersonating a user with the JWT grant.

The assertion is signed with the RSA private key of the integrator key (PEM or JWK,
see the keygen command). The user must have granted consent to the integration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			privateKey, err := crypto.ReadRSAPrivateKeyFile(filepath.Dir(privateKeyFile), filepath.Base(privateKeyFile))
			var keyErr *crypto.KeyError
			if errors.As(err, &keyErr) && keyErr.Code() == crypto.ErrCodeKeyFormat {
				return fmt.Errorf("--private-key-file must be an RSA private key (PEM or JWK): %w", err)
			}
			if err != nil {
				return err
			}
			grant.PrivateKey = privateKey

			client, err := a.client()
			if err != nil {
				return err
			}
			grant.IntegratorKey = client.IntegratorKey()
			token, err := client.RequestJWTGrantToken(cmd.Context(), grant)
			if err != nil {
				return err
			}
			return writeJSON(cmd, token)
		},
	}
	cmd.Flags().StringVar(&grant.UserID, "user-id", "", "GUID of the impersonated user [required]")
	cmd.Flags().StringVar(&privateKeyFile, "private-key-file", "", "RSA private key file (PEM or JWK) [required]")
	cmd.Flags().StringVar(&grant.AuthServer, "auth-server", docusign.DemoAuthServer, "account server, "+docusign.ProductionAuthServer+" in production")
	cmd.Flags().StringSliceVar(&grant.Scopes, "scope", docusign.DefaultJWTGrantScopes, "requested scopes")
	cmd.Flags().DurationVar(&grant.Lifetime, "lifetime", 0, "lifetime of the assertion (1h when 0)")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("private-key-file")
	return cmd
}
