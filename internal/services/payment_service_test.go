package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/geoads/backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	s := &PaymentService{cfg: &config.Config{CheckoutWebhookSecret: "topsecret"}}
	body := []byte(`{"session_id":"abc","status":"paid"}`)

	assert.True(t, s.VerifyWebhookSignature(body, signBody("topsecret", body)))
	assert.False(t, s.VerifyWebhookSignature(body, signBody("wrongsecret", body)))
	assert.False(t, s.VerifyWebhookSignature(body, ""))
	assert.False(t, s.VerifyWebhookSignature([]byte(`tampered`), signBody("topsecret", body)))
}

func TestVerifyWebhookSignatureDisabledWithoutSecret(t *testing.T) {
	s := &PaymentService{cfg: &config.Config{}}
	assert.True(t, s.VerifyWebhookSignature([]byte("anything"), "whatever"))
}
