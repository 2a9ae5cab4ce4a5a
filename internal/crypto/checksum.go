// this file contains functions to calculate SHA-256 checksums of the documents downloaded from DocuSign

package crypto

import (
	"crypto"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

const cryptoSHA256 = crypto.SHA256

// CalculateSHA256Hex calculates the SHA-256 checksum of data and returns it as a hex string
func CalculateSHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CopyWithSHA256 copies src to dst and returns the number of bytes written and the hex SHA-256 checksum of the content
func CopyWithSHA256(dst io.Writer, src io.Reader) (int64, string, error) {
	hasher := sha256.New()
	n, err := io.Copy(io.MultiWriter(dst, hasher), src)
	if err != nil {
		return n, "", fmt.Errorf("failed to copy content: %w", err)
	}
	return n, hex.EncodeToString(hasher.Sum(nil)), nil
}

// CalculateSHA256FromFile calculates the SHA-256 checksum of a file
func CalculateSHA256FromFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	_, checksum, err := CopyWithSHA256(io.Discard, file)
	return checksum, err
}

// VerifyChecksum reports whether a hex SHA-256 checksum matches the expected one (case insensitive)
func VerifyChecksum(checksum, expectedChecksum string) bool {
	return strings.EqualFold(checksum, strings.TrimSpace(expectedChecksum))
}
