package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims carries the authenticated caller's identity through the request.
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
