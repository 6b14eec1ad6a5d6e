package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims carries the authenticated username in the registered "sub" claim.
type AppClaims struct {
	jwt.RegisteredClaims
}
