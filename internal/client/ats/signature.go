package ats

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

// VerifySignature checks an inbound ATS webhook signature against
// resourceID: sig == base64(hex(HMAC_SHA256(key, resourceID))), compared
// in constant time (§4.3.7). An empty signingKey disables verification
// (§6), so callers must gate that case themselves — this function only
// ever reports a match/mismatch for a configured key.
//
// Grounded on the teacher's internal/application/auth/authenticator.go
// constant-time-compare idiom (subtle.ConstantTimeCompare over a hashed
// secret), translated from API-key hashing to webhook HMAC verification.
func VerifySignature(signingKey, resourceID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(signingKey))
	mac.Write([]byte(resourceID))
	expected := base64.StdEncoding.EncodeToString([]byte(hex.EncodeToString(mac.Sum(nil))))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
