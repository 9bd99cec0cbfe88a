// Package auth resolves the caller identity from an already-issued claims
// token and answers role checks. Token validation proper (signatures, expiry,
// identity-provider round trips) happens upstream; this package only reads
// the resolved claims the gateway forwards.
package auth

import (
	"encoding/json"
	"strings"
)

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// roleClaim is the custom claim key carrying the caller's role.
const roleClaim = "custom:custom:role"

// Identity is the resolved caller. A zero Identity is anonymous: operations
// requiring a user reject it with 401 before any role check runs.
type Identity struct {
	UserID string
	Role   string
}

// Anonymous reports whether no user id could be resolved.
func (id Identity) Anonymous() bool { return id.UserID == "" }

type tokenDoc struct {
	Claims map[string]string `json:"claims"`
}

// FromAuthorizationHeader parses a "Bearer <token>" header where the token is
// the gateway-decoded claims document as JSON. Any shape problem yields the
// anonymous identity rather than an error; denial happens downstream.
func FromAuthorizationHeader(header string) Identity {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return Identity{}
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if raw == "" {
		return Identity{}
	}

	var doc tokenDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Claims == nil {
		return Identity{}
	}

	return Identity{
		UserID: doc.Claims["sub"],
		Role:   doc.Claims[roleClaim],
	}
}

// IsAllowed is a pure set-membership check of role against allowedRoles.
func IsAllowed(role string, allowedRoles ...string) bool {
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}
