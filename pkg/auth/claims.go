package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims accepted by jobsentinel. Callers are identified
// by the registered subject; ClientID names the integrating client (for
// example the browser extension build) when one is set.
type Claims struct {
	jwt.RegisteredClaims
	ClientID string   `json:"client_id,omitempty"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the claims carry role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

const (
	// RoleAdmin may list assessments and community reports.
	RoleAdmin = "admin"
	// RoleReviewer may read stored assessments.
	RoleReviewer = "reviewer"
	// RoleClient is granted to extension and API integrations that submit postings.
	RoleClient = "client"
)
