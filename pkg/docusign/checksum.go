package docusign

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// EnvelopeChecksum returns the SHA-256 (hex) of the RFC 8785 canonical form of the envelope definition.
//
// Two envelopes with the same definition have the same checksum regardless of how the JSON was produced,
// which allows a submission to be identified in logs before DocuSign assigned an envelope id.
// Document contents are not part of the definition.
func EnvelopeChecksum(envelope *Envelope) (string, error) {
	definition, err := json.Marshal(envelope)
	if err != nil {
		return "", WrapInternalError(err, "failed to encode envelope definition")
	}
	canonical, err := jcs.Transform(definition)
	if err != nil {
		return "", WrapInternalError(err, "failed to canonicalize envelope definition")
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
