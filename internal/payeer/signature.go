package payeer

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Sign computes the Payeer signature over the ordered fields: the values are
// joined with ':', the secret appended last, and the SHA-256 digest rendered
// as uppercase hex.
func Sign(fields []string, secret string) string {
	payload := strings.Join(append(append([]string{}, fields...), secret), ":")
	sum := sha256.Sum256([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify recomputes the signature and compares it to the provided one in
// constant time. A missing or malformed signature is a mismatch, never an
// error.
func Verify(fields []string, secret, provided string) bool {
	if provided == "" {
		return false
	}
	expected := Sign(fields, secret)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// VerifyNotification checks the m_sign of a raw inbound notification against
// the documented inbound field order. Absent fields participate as empty
// strings, which yields a mismatch for any genuinely signed payload.
func VerifyNotification(raw map[string]string, secret string) bool {
	fields := make([]string, 0, len(inboundSignFields))
	for _, name := range inboundSignFields {
		fields = append(fields, raw[name])
	}
	return Verify(fields, secret, raw[FieldSign])
}
