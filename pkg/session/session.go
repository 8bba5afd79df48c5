// Package session stores Homebox login tokens between CLI invocations.
//
// A session is one server's token grant. Sessions are keyed by the server
// URL, so a user can stay logged in to several Homebox instances at once.
// The file store keeps them as JSON under ~/.config/labelsmith/sessions/
// with owner-only permissions.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// Session is one server's stored login.
type Session struct {
	Server          string    `json:"server"`
	Username        string    `json:"username"`
	Token           string    `json:"token"`
	AttachmentToken string    `json:"attachment_token,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsExpired returns true if the stored token has passed its server-side
// expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store persists sessions across CLI invocations.
type Store interface {
	// Get returns the session for a server, or nil if none is stored or
	// the stored one expired.
	Get(ctx context.Context, server string) (*Session, error)

	// Set stores or replaces the session for sess.Server.
	Set(ctx context.Context, sess *Session) error

	// Delete removes the session for a server. Deleting a missing
	// session is not an error.
	Delete(ctx context.Context, server string) error

	// Cleanup removes all expired sessions.
	Cleanup(ctx context.Context) error
}

// keyFor derives a stable filename-safe key from a server URL. The host
// keeps the filename readable; the hash disambiguates schemes, ports, and
// paths.
func keyFor(server string) string {
	sum := sha256.Sum256([]byte(server))
	host := "server"
	if u, err := url.Parse(server); err == nil && u.Host != "" {
		host = strings.ReplaceAll(u.Host, ":", "-")
	}
	return host + "-" + hex.EncodeToString(sum[:])[:12]
}
