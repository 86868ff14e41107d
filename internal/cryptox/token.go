package cryptox

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the access token claims the client cares about. The server puts
// the user id in userUuid; sub is used when it is missing.
type Claims struct {
	jwt.RegisteredClaims
	UserUUID string `json:"userUuid,omitempty"`
}

// SubjectFromToken returns the user id carried by an access token.
//
// The signature is not verified: the token was issued to this client by the
// server and is only inspected for its claims.
func (p *Provider) SubjectFromToken(token string) (string, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserUUID != "" {
		return claims.UserUUID, nil
	}
	if claims.Subject != "" {
		return claims.Subject, nil
	}
	return "", fmt.Errorf("%w: no subject claim", ErrInvalidToken)
}
