package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents JWT custom claims for API clients
type Claims struct {
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// Roles accepted by the API
const (
	RoleReader   = "reader"
	RoleImporter = "importer"
	RoleAdmin    = "admin"
)
