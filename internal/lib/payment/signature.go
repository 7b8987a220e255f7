package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifyPaymentSignature checks the signature returned by the
// checkout widget after a payment. The gateway signs
// "<order_id>|<payment_id>" with the key secret using HMAC-SHA256,
// hex encoded. Comparison is constant-time.
func (c *Client) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool {
	return verifyHMAC([]byte(c.keySecret), []byte(gatewayOrderID+"|"+paymentID), signature)
}

// VerifyWebhookSignature checks the X-Razorpay-Signature header on a
// webhook delivery: HMAC-SHA256 of the raw body with the webhook
// secret.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	return verifyHMAC([]byte(c.webhookSecret), body, signature)
}

func verifyHMAC(secret, message []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
