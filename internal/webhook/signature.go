package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureHeader carries the payload digest; TimestampHeader the value the
// digest binds to. The receiver recomputes HMAC-SHA256(secret, ts + "." + body)
// and compares.
const (
	SignatureHeader = "X-Webhook-Signature"
	TimestampHeader = "X-Webhook-Timestamp"
)

// Sign computes the signature header value for a timestamped body:
// "sha256=" followed by the hex HMAC-SHA256 digest of timestamp + "." + body.
func Sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature matches the secret, timestamp and body.
// Comparison is constant time.
func Verify(secret, timestamp string, body []byte, signature string) bool {
	expected := Sign(secret, timestamp, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}
