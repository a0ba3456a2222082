package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"cmdbot/core"
	"cmdbot/utils"
)

// Prefix precedes the base64 digest in the Authorization header
const Prefix = "HMAC "

// Verifier signs and verifies webhook bodies with a shared secret
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the decoded shared secret
func NewVerifier(secret []byte) *Verifier {
	utils.AssertInvariant(len(secret) > 0, "shared secret cannot be empty")

	key := make([]byte, len(secret))
	copy(key, secret)
	return &Verifier{secret: key}
}

// Sign returns the Authorization header value expected for rawBody
func (v *Verifier) Sign(rawBody []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	return Prefix + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether authHeader is exactly the signature of rawBody.
// The comparison runs in constant time.
func (v *Verifier) Verify(authHeader string, rawBody []byte) bool {
	if authHeader == "" {
		return false
	}
	return hmac.Equal([]byte(v.Sign(rawBody)), []byte(authHeader))
}

// Ensure is Verify returning core.ErrUnauthorized on mismatch
func (v *Verifier) Ensure(authHeader string, rawBody []byte) error {
	if !v.Verify(authHeader, rawBody) {
		if authHeader == "" {
			return fmt.Errorf("%w: missing Authorization header", core.ErrUnauthorized)
		}
		return fmt.Errorf("%w: signature mismatch", core.ErrUnauthorized)
	}
	return nil
}
