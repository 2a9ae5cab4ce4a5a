// these functions convert RSA keys to JWK format (RFC 7517)
//
// JWK files are an alternative to PEM files for storing the JWT grant key
// (keygen writes both, the CLI reads either).

package crypto

import (
	"crypto/rsa"
	"encoding/hex"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// RSAPublicKeyToJWK converts a RSA public key to JWK format
func RSAPublicKeyToJWK(publicKey *rsa.PublicKey, keyID string) (jwk.Key, error) {
	key, err := jwk.Import(publicKey)
	if err != nil {
		return nil, WrapKeyFormatError(err, "", "failed to create JWK from RSA public key")
	}
	if err := setKeyAttributes(key, keyID); err != nil {
		return nil, err
	}
	return key, nil
}

// RSAPrivateKeyToJWK converts an RSA private key to JWK format
func RSAPrivateKeyToJWK(privateKey *rsa.PrivateKey, keyID string) (jwk.Key, error) {
	key, err := jwk.Import(privateKey)
	if err != nil {
		return nil, WrapKeyFormatError(err, "", "failed to create JWK from RSA private key")
	}
	if err := setKeyAttributes(key, keyID); err != nil {
		return nil, err
	}
	return key, nil
}

func setKeyAttributes(key jwk.Key, keyID string) error {
	if keyID != "" {
		if err := key.Set(jwk.KeyIDKey, keyID); err != nil {
			return WrapKeyFormatError(err, "", "failed to set key ID")
		}
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.RS256()); err != nil {
		return WrapKeyFormatError(err, "", "failed to set algorithm")
	}
	if err := key.Set(jwk.KeyUsageKey, jwk.ForSignature); err != nil {
		return WrapKeyFormatError(err, "", "failed to set key usage")
	}
	return nil
}

// GenerateKeyIDFromRSAKey generates a key ID from an RSA public key using its SHA-256 thumbprint (RFC 7638).
// Returns the first 16 characters of the hex-encoded thumbprint.
func GenerateKeyIDFromRSAKey(publicKey *rsa.PublicKey) (string, error) {
	key, err := jwk.Import(publicKey)
	if err != nil {
		return "", WrapKeyFormatError(err, "", "failed to create JWK from RSA public key")
	}
	thumbprint, err := key.Thumbprint(cryptoSHA256)
	if err != nil {
		return "", WrapInternalError(err, "failed to compute key thumbprint")
	}
	kid := hex.EncodeToString(thumbprint)
	if len(kid) < 16 {
		return "", NewInternalError(fmt.Sprintf("unexpected thumbprint length %d", len(kid)))
	}
	return kid[:16], nil
}
