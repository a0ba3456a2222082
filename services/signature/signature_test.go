package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"cmdbot/core"
)

func expectedSignature(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return "HMAC " + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifier_Sign(t *testing.T) {
	secret := []byte("test_shared_secret")
	verifier := NewVerifier(secret)

	bodies := []string{
		`{"text":"@bot uuidv4"}`,
		`{"text":"@bot exchange eurusd\n"}`,
		`{"text":"@bot&nbsp;commands"}`,
		`{"text":"日本語のメッセージ"}`,
		``,
	}

	for _, body := range bodies {
		assert.Equal(t, expectedSignature(secret, []byte(body)), verifier.Sign([]byte(body)))
	}
}

func TestVerifier_Verify(t *testing.T) {
	secret := []byte("test_shared_secret")
	verifier := NewVerifier(secret)
	body := []byte(`{"text":"@bot uuidv4"}`)
	valid := verifier.Sign(body)

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, verifier.Verify(valid, body))
		assert.NoError(t, verifier.Ensure(valid, body))
	})

	t.Run("missing header", func(t *testing.T) {
		assert.False(t, verifier.Verify("", body))
		assert.True(t, errors.Is(verifier.Ensure("", body), core.ErrUnauthorized))
	})

	t.Run("missing prefix", func(t *testing.T) {
		assert.False(t, verifier.Verify(valid[len(Prefix):], body))
	})

	t.Run("lowercase prefix", func(t *testing.T) {
		assert.False(t, verifier.Verify("hmac "+valid[len(Prefix):], body))
	})

	t.Run("trailing whitespace", func(t *testing.T) {
		assert.False(t, verifier.Verify(valid+" ", body))
	})

	t.Run("different secret", func(t *testing.T) {
		other := NewVerifier([]byte("another_secret"))
		assert.False(t, other.Verify(valid, body))
		assert.True(t, errors.Is(other.Ensure(valid, body), core.ErrUnauthorized))
	})
}

func TestVerifier_SingleByteMutations(t *testing.T) {
	verifier := NewVerifier([]byte("test_shared_secret"))
	body := []byte(`{"text":"@bot usdjp"}`)
	header := verifier.Sign(body)

	for i := range body {
		mutated := make([]byte, len(body))
		copy(mutated, body)
		mutated[i] ^= 0x01
		assert.False(t, verifier.Verify(header, mutated), "body mutation at %d should fail", i)
	}

	for i := range header {
		mutated := []byte(header)
		mutated[i] ^= 0x01
		assert.False(t, verifier.Verify(string(mutated), body), "header mutation at %d should fail", i)
	}
}

func TestVerifier_SecretIsCopied(t *testing.T) {
	secret := []byte("test_shared_secret")
	verifier := NewVerifier(secret)
	body := []byte(`{"text":"@bot uuidv4"}`)
	header := verifier.Sign(body)

	secret[0] = 'X'
	assert.True(t, verifier.Verify(header, body))
}

func TestNewVerifier_EmptySecret_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewVerifier(nil)
	})
}
