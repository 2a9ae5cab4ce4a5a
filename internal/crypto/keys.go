// this file contains functions to generate and store the RSA key pair used for the DocuSign JWT grant
//
// DocuSign only accepts RS256 signed assertions: the public key is uploaded to the integration key
// settings (PEM, SubjectPublicKeyInfo) and the private key is used to sign the assertion.
//
// Private keys are saved as PEM (PKCS#8) or JWK, ReadRSAPrivateKeyFile reads PKCS#1 and PKCS#8 PEM
// files (DocuSign generated keys are PKCS#1) as well as JWK files.

package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"

	"github.com/information-sharing-networks/docusign-client/pkg/docusign"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// MinRSAKeySize is the smallest key size accepted by DocuSign
const MinRSAKeySize = 2048

// GenerateRSAKeyPair generates a new RSA key pair with the specified bit size
// minimum key size is 2048 bits - key size must be a multiple of 256
func GenerateRSAKeyPair(bits int) (*rsa.PrivateKey, error) {
	if bits < MinRSAKeySize {
		return nil, NewKeySizeError(fmt.Sprintf("RSA key size must be at least %d bits, got %d", MinRSAKeySize, bits))
	}
	if bits%256 != 0 {
		return nil, NewKeySizeError(fmt.Sprintf("RSA key size must be a multiple of 256, got %d", bits))
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, WrapInternalError(err, "failed to generate RSA key pair")
	}
	return privateKey, nil
}

// SaveRSAPrivateKeyToJWKFile saves an RSA private key to a JWK set file
// note the key is not encrypted
//
// Parameters:
//   - baseDir: The base directory to scope file access (e.g., "./keys")
//   - filename: The filename within the base directory (e.g., "private.jwk")
func SaveRSAPrivateKeyToJWKFile(privateKey *rsa.PrivateKey, keyID, baseDir, filename string) error {
	jwkKey, err := RSAPrivateKeyToJWK(privateKey, keyID)
	if err != nil {
		return err
	}
	return writeJWKSet(jwkKey, baseDir, filename, 0600)
}

// SaveRSAPublicKeyToJWKFile saves an RSA public key to a JWK set file
func SaveRSAPublicKeyToJWKFile(publicKey *rsa.PublicKey, keyID, baseDir, filename string) error {
	jwkKey, err := RSAPublicKeyToJWK(publicKey, keyID)
	if err != nil {
		return err
	}
	return writeJWKSet(jwkKey, baseDir, filename, 0644)
}

func writeJWKSet(key jwk.Key, baseDir, filename string, perm os.FileMode) error {
	jwkSet := jwk.NewSet()
	if err := jwkSet.AddKey(key); err != nil {
		return WrapKeyFormatError(err, "", "failed to add key to JWK set")
	}

	jsonBytes, err := json.MarshalIndent(jwkSet, "", "  ")
	if err != nil {
		return WrapInternalError(err, "failed to marshal JWK set")
	}
	return writeFile(baseDir, filename, jsonBytes, perm)
}

// SaveRSAPrivateKeyToPEMFile saves an RSA private key to a PEM file in PKCS#8 format
//
// Parameters:
//   - baseDir: The base directory to scope file access (e.g., "./keys")
//   - filename: The filename within the base directory (e.g., "private.pem")
func SaveRSAPrivateKeyToPEMFile(privateKey *rsa.PrivateKey, baseDir, filename string) error {
	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return WrapKeyFormatError(err, "", "failed to marshal private key")
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	return writeFile(baseDir, filename, pemBytes, 0600)
}

// SaveRSAPublicKeyToPEMFile saves an RSA public key to a PEM file in SubjectPublicKeyInfo format.
// This is the format expected by DocuSign when adding an RSA key pair to an integration key.
func SaveRSAPublicKeyToPEMFile(publicKey *rsa.PublicKey, baseDir, filename string) error {
	pemBytes, err := RSAPublicKeyToPEM(publicKey)
	if err != nil {
		return err
	}
	return writeFile(baseDir, filename, pemBytes, 0644)
}

// RSAPublicKeyToPEM encodes an RSA public key as a PEM SubjectPublicKeyInfo block
func RSAPublicKeyToPEM(publicKey *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(publicKey)
	if err != nil {
		return nil, WrapKeyFormatError(err, "", "failed to marshal public key")
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// ReadRSAPrivateKeyFile loads an RSA private key from a PEM (PKCS#1 or PKCS#8) or JWK file
//
// Parameters:
//   - baseDir: The base directory to scope file access (e.g., "./keys")
//   - filename: The filename within the base directory (e.g., "private.pem")
func ReadRSAPrivateKeyFile(baseDir, filename string) (*rsa.PrivateKey, error) {
	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return nil, WrapKeyFileError(err, baseDir, "failed to open key directory")
	}
	defer root.Close()

	data, err := root.ReadFile(filename)
	if err != nil {
		return nil, WrapKeyFileError(err, filepath.Join(baseDir, filename), "failed to read key file")
	}

	privateKey, err := docusign.ParseRSAPrivateKey(data)
	if err != nil {
		return nil, WrapKeyFormatError(err, filepath.Join(baseDir, filename), "file does not contain an RSA private key")
	}
	return privateKey, nil
}

func writeFile(baseDir, filename string, data []byte, perm os.FileMode) error {
	root, err := os.OpenRoot(baseDir)
	if err != nil {
		return WrapKeyFileError(err, baseDir, "failed to open key directory")
	}
	defer root.Close()

	if err := root.WriteFile(filename, data, perm); err != nil {
		return WrapKeyFileError(err, filepath.Join(baseDir, filename), "failed to write key file")
	}
	return nil
}
