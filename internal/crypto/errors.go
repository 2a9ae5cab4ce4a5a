package crypto

import "fmt"

type ErrorCode string

const (
	// ErrCodeKeySize is used for RSA key sizes DocuSign does not accept
	ErrCodeKeySize ErrorCode = "key_size"

	// ErrCodeKeyFile is used when a key file cannot be opened, read or written
	ErrCodeKeyFile ErrorCode = "key_file"

	// ErrCodeKeyFormat is used when a key cannot be encoded or decoded (PEM, PKCS#8, JWK)
	ErrCodeKeyFormat ErrorCode = "key_format"

	ErrCodeInternal ErrorCode = "internal"
)

// KeyError is returned by the key generation, conversion and key file functions.
type KeyError struct {
	code    ErrorCode
	message string

	// path is the key file involved, if any
	path string

	wrapped error
}

func (e *KeyError) Error() string {
	msg := e.message
	if e.path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.path)
	}
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

func (e *KeyError) Code() ErrorCode { return e.code }
func (e *KeyError) Path() string    { return e.path }
func (e *KeyError) Unwrap() error   { return e.wrapped }

// NewKeySizeError reports an RSA key size rejected by DocuSign.
func NewKeySizeError(msg string) error {
	return &KeyError{code: ErrCodeKeySize, message: msg}
}

// WrapKeyFileError reports a failure to access the key file at path.
func WrapKeyFileError(err error, path, msg string) error {
	return &KeyError{code: ErrCodeKeyFile, message: msg, path: path, wrapped: err}
}

// WrapKeyFormatError reports a key that could not be encoded or decoded.
// path is empty for in-memory conversions.
func WrapKeyFormatError(err error, path, msg string) error {
	return &KeyError{code: ErrCodeKeyFormat, message: msg, path: path, wrapped: err}
}

func NewInternalError(msg string) error {
	return &KeyError{code: ErrCodeInternal, message: msg}
}

// WrapInternalError is used for crypto library failures that should not normally occur.
func WrapInternalError(err error, msg string) error {
	return &KeyError{code: ErrCodeInternal, message: msg, wrapped: err}
}
