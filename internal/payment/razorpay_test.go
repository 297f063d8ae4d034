package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_AcceptsValid(t *testing.T) {
	g := NewGateway("rzp_test_key", "secret123")
	sig := sign("secret123", "order_abc", "pay_xyz")

	assert.True(t, g.VerifySignature("order_abc", "pay_xyz", sig))
}

func TestVerifySignature_RejectsAnySingleCharacterMutation(t *testing.T) {
	g := NewGateway("rzp_test_key", "secret123")
	sig := sign("secret123", "order_abc", "pay_xyz")

	for i := range sig {
		mutated := []byte(sig)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		assert.False(t, g.VerifySignature("order_abc", "pay_xyz", string(mutated)), "position %d", i)
	}
}

func TestVerifySignature_RejectsWrongPayload(t *testing.T) {
	g := NewGateway("rzp_test_key", "secret123")
	sig := sign("secret123", "order_abc", "pay_xyz")

	assert.False(t, g.VerifySignature("order_abc", "pay_other", sig))
	assert.False(t, g.VerifySignature("order_other", "pay_xyz", sig))
	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", ""))
}

func TestVerifySignature_RejectsWrongSecret(t *testing.T) {
	g := NewGateway("rzp_test_key", "secret123")
	sig := sign("other-secret", "order_abc", "pay_xyz")

	assert.False(t, g.VerifySignature("order_abc", "pay_xyz", sig))
}

func TestConfigured(t *testing.T) {
	assert.True(t, NewGateway("id", "secret").Configured())
	assert.False(t, NewGateway("", "secret").Configured())
	assert.False(t, NewGateway("id", "").Configured())

	_, err := NewGateway("", "").CreateOrder(63900, "LMN-2025-0423", "asha@example.com")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.False(t, NewGateway("", "").VerifySignature("o", "p", "s"))
}

func TestPublicKey(t *testing.T) {
	assert.Equal(t, "rzp_test_key", NewGateway("rzp_test_key", "s").PublicKey())
}
