package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload. Role carries the typed role tag so handlers can
// gate without a directory lookup; services still re-resolve the role from
// the database for every state-changing operation.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
