// Package auth implements the single-credential session guard: one shared
// password checked on login, one signed session marker proving the check
// happened. No per-user accounts, no rotation.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SessionTTL is the fixed validity window of an issued marker.
const SessionTTL = 7 * 24 * time.Hour

// CookieName identifies the session cookie.
const CookieName = "dayplan_session"

// Sessions checks the shared credential and issues/verifies session
// markers. Markers are HMAC-signed expiry stamps, so they stay valid
// across process restarts without any server-side session table.
type Sessions struct {
	secret []byte
	now    func() time.Time
}

// New creates a session guard from the configured shared secret. An empty
// secret is a configuration error, never silently defaulted.
func New(secret string) (*Sessions, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is not configured")
	}
	return &Sessions{secret: []byte(secret), now: time.Now}, nil
}

// CheckPassword compares a supplied credential against the shared secret
// in constant time.
func (s *Sessions) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), s.secret) == 1
}

// Issue returns a fresh marker valid for SessionTTL.
func (s *Sessions) Issue() string {
	expiry := strconv.FormatInt(s.now().Add(SessionTTL).Unix(), 10)
	stamp := base64.RawURLEncoding.EncodeToString([]byte(expiry))
	return stamp + "." + s.sign(stamp)
}

// Verify reports whether a marker carries a valid signature and has not
// expired. Malformed or tampered markers fail closed.
func (s *Sessions) Verify(marker string) bool {
	stamp, sig, ok := strings.Cut(marker, ".")
	if !ok {
		return false
	}
	if !hmac.Equal([]byte(s.sign(stamp)), []byte(sig)) {
		return false
	}

	raw, err := base64.RawURLEncoding.DecodeString(stamp)
	if err != nil {
		return false
	}
	expiry, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return false
	}
	return s.now().Unix() < expiry
}

func (s *Sessions) sign(stamp string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(stamp))
	return hex.EncodeToString(mac.Sum(nil))
}
