package security

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HrmIdentity is the employee identity embedded in an access token.
type HrmIdentity struct {
	EmployeeID string
	Name       string
	Email      string
	Role       string
}

type Identity struct {
	EmployeeID string `json:"employee_id"`
	UniqueName string `json:"unique_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken issues an HS256 token for the given identity. The
// secret is base64-encoded, matching how it is stored in configuration.
func CreateIdentityToken(identity *HrmIdentity, base64Secret string, ttl time.Duration) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", fmt.Errorf("decode secret: %w", err)
	}

	claims := IdentityClaims{
		Identity: Identity{
			EmployeeID: identity.EmployeeID,
			UniqueName: identity.Name,
			Email:      identity.Email,
			Role:       identity.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "skyraksys-hrm",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}

// ParseIdentityToken validates a token and returns its claims.
func ParseIdentityToken(tokenStr string, base64Secret string) (*IdentityClaims, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secretBytes, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
