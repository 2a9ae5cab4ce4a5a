package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/information-sharing-networks/docusign-client/internal/crypto"
	"github.com/spf13/cobra"
)

// file naming convention - name.private.pem, name.public.pem, name.public.jwk (and name.private.jwk with --jwk)
const (
	privateKeyFileNameFormat    = "%s.private.pem"
	publicKeyFileNameFormat     = "%s.public.pem"
	publicJWKKeyFileNameFormat  = "%s.public.jwk"
	privateJWKKeyFileNameFormat = "%s.private.jwk"
)

// keygenOptions are the flags of the keygen command
type keygenOptions struct {
	name      string
	outputDir string
	size      int
	kid       string
	jwk       bool
}

// NewKeygenCmd returns the command generating the RSA key pair of the JWT grant.
func NewKeygenCmd() *cobra.Command {
	var opts keygenOptions
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate the RSA key pair used by the JWT grant",
		Long: `Generate an RSA key pair for an integration key.

Upload the public PEM file to the integration key settings in DocuSign admin and use the
private key file with 'docusign oauth jwt --private-key-file'.`,
		Example: `  docusign keygen --outputdir ./keys --size 2048`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.name, "name", "n", "docusign", "prefix of the generated file names")
	cmd.Flags().StringVarP(&opts.outputDir, "outputdir", "o", "", "output directory for generated keys [required]")
	cmd.Flags().IntVarP(&opts.size, "size", "s", 2048, "RSA key size in bits")
	cmd.Flags().StringVarP(&opts.kid, "kid", "k", "", "key ID (default: generated from the key thumbprint)")
	cmd.Flags().BoolVar(&opts.jwk, "jwk", false, "also save the private key as a JWK set (unencrypted)")
	_ = cmd.MarkFlagRequired("outputdir")
	return cmd
}

func runKeygen(cmd *cobra.Command, opts keygenOptions) error {
	// make the directory if it doesn't exist
	if _, err := os.Stat(opts.outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	slog.Debug("generating RSA key pair", slog.Int("key_size", opts.size), slog.String("output_dir", opts.outputDir))

	privateKey, err := crypto.GenerateRSAKeyPair(opts.size)
	if err != nil {
		return fmt.Errorf("failed to generate RSA key: %w", err)
	}

	keyID := opts.kid
	if keyID == "" {
		keyID, err = crypto.GenerateKeyIDFromRSAKey(&privateKey.PublicKey)
		if err != nil {
			return fmt.Errorf("failed to generate key ID: %w", err)
		}
	}

	privateFile := fmt.Sprintf(privateKeyFileNameFormat, opts.name)
	if err := crypto.SaveRSAPrivateKeyToPEMFile(privateKey, opts.outputDir, privateFile); err != nil {
		return fmt.Errorf("failed to save private key: %w", err)
	}

	publicFile := fmt.Sprintf(publicKeyFileNameFormat, opts.name)
	if err := crypto.SaveRSAPublicKeyToPEMFile(&privateKey.PublicKey, opts.outputDir, publicFile); err != nil {
		return fmt.Errorf("failed to save public key: %w", err)
	}

	jwkFile := fmt.Sprintf(publicJWKKeyFileNameFormat, opts.name)
	if err := crypto.SaveRSAPublicKeyToJWKFile(&privateKey.PublicKey, keyID, opts.outputDir, jwkFile); err != nil {
		return fmt.Errorf("failed to save public JWK: %w", err)
	}

	pemBytes, err := crypto.RSAPublicKeyToPEM(&privateKey.PublicKey)
	if err != nil {
		return err
	}

	result := keygenResult{
		KeyID:          keyID,
		PrivateKeyFile: filepath.Join(opts.outputDir, privateFile),
		PublicKeyFile:  filepath.Join(opts.outputDir, publicFile),
		PublicJWKFile:  filepath.Join(opts.outputDir, jwkFile),
		PublicKey:      string(pemBytes),
	}

	if opts.jwk {
		privateJWKFile := fmt.Sprintf(privateJWKKeyFileNameFormat, opts.name)
		if err := crypto.SaveRSAPrivateKeyToJWKFile(privateKey, keyID, opts.outputDir, privateJWKFile); err != nil {
			return fmt.Errorf("failed to save private JWK: %w", err)
		}
		result.PrivateJWKFile = filepath.Join(opts.outputDir, privateJWKFile)
	}

	return writeJSON(cmd, result)
}

// keygenResult lists the generated files. PublicKey is the PEM to add to the integration key.
type keygenResult struct {
	KeyID          string `json:"kid"`
	PrivateKeyFile string `json:"privateKeyFile"`
	PublicKeyFile  string `json:"publicKeyFile"`
	PublicJWKFile  string `json:"publicJwkFile"`
	PrivateJWKFile string `json:"privateJwkFile,omitempty"`
	PublicKey      string `json:"publicKey"`
}
