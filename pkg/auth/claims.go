package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenPayload captures the data available when minting an admin JWT.
type AdminTokenPayload struct {
	Username string
	// Source records whether the admin came from configuration or the admins table.
	Source string
	JTI    string
}

// AdminClaims represents the typed JWT issued to back-office sessions.
type AdminClaims struct {
	Username string `json:"username"`
	Source   string `json:"source,omitempty"`
	jwt.RegisteredClaims
}
