package tracker

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	perr "caseflow/internal/platform/errors"
)

// Verifier checks webhook payload signatures from the tracker
// the tracker signs the raw body with HMAC-SHA256 and sends the hex digest
// in the X-Signature header
type Verifier struct {
	secret []byte
}

// NewVerifier builds a Verifier for the shared webhook secret
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// VerifyPayload recomputes the digest over body and compares it in constant
// time against the presented hex signature
func (v *Verifier) VerifyPayload(body []byte, signature string) error {
	if len(v.secret) == 0 {
		return perr.Unauthorizedf("webhook secret not configured")
	}
	if signature == "" {
		return perr.Unauthorizedf("missing signature")
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return perr.Unauthorizedf("signature mismatch")
	}
	return nil
}
