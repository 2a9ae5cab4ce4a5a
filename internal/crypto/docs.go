// crypto package provides the key management and checksum helpers used by the CLI and keygen.
//
// The JWT grant assertion itself is built and signed by pkg/docusign (JWTGrant); this package
// generates, stores and loads the RSA keys it uses.
package crypto
