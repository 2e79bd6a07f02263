package gateway

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCache is a signed API token and the moment it stops being usable.
// The zero value holds no token.
type TokenCache struct {
	token  string
	expiry time.Time
}

func NewTokenCache(token string, expiry time.Time) TokenCache {
	return TokenCache{token: token, expiry: expiry}
}

func (c TokenCache) Token() string { return c.token }

// Valid reports whether the token can still be presented at now.
func (c TokenCache) Valid(now time.Time) bool {
	return c.token != "" && now.Before(c.expiry)
}

// notifyTokenTTL keeps tokens well inside the provider's 30 second clock skew
// allowance.
const notifyTokenTTL = 20 * time.Second

// signNotifyToken issues the HS256 token the Notify API expects: iss is the
// service id and iat the issue time.
func signNotifyToken(serviceID, secret string, now time.Time) (TokenCache, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:   serviceID,
		IssuedAt: jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return TokenCache{}, err
	}
	return NewTokenCache(signed, now.Add(notifyTokenTTL)), nil
}
