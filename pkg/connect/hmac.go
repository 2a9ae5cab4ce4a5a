package connect

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// SignatureHeaderPrefix is the prefix of the headers carrying the HMAC signatures of a notification.
// DocuSign sends one header per active Connect key: X-DocuSign-Signature-1, X-DocuSign-Signature-2, ...
const SignatureHeaderPrefix = "X-DocuSign-Signature-"

// maxSignatureHeaders is the number of Connect keys an account can have
const maxSignatureHeaders = 100

// Sign returns the base64 encoded HMAC-SHA256 of body computed with key.
func Sign(body []byte, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignaturesFromHeader returns the X-DocuSign-Signature-N header values in order.
func SignaturesFromHeader(h http.Header) []string {
	var signatures []string
	for i := 1; i <= maxSignatureHeaders; i++ {
		value := strings.TrimSpace(h.Get(fmt.Sprintf("%s%d", SignatureHeaderPrefix, i)))
		if value == "" {
			break
		}
		signatures = append(signatures, value)
	}
	return signatures
}

// VerifyHMAC reports whether one of signatures is the signature of body with one of keys.
func VerifyHMAC(body []byte, keys []string, signatures []string) bool {
	for _, key := range keys {
		if key == "" {
			continue
		}
		expected := []byte(Sign(body, key))
		for _, signature := range signatures {
			if hmac.Equal(expected, []byte(signature)) {
				return true
			}
		}
	}
	return false
}
