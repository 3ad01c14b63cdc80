package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// [AI_SECURITY_START]
// SECURITY_CONSTRAINTS:
// {
//   "token_type": "JWT",
//   "algorithm": "HS256",
//   "expiration": "TOKEN_TTL",
//   "claims": ["device_id", "iat", "exp"],
//   "secret_key": "JWT_SECRET_KEY"
// }
// [AI_SECURITY_END]

// ErrNoToken is returned when a request carries no bearer token.
var ErrNoToken = errors.New("no token provided")

// Tokens issues and checks device tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a Tokens signing with secret. Issued tokens expire
// after ttl.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken creates a JWT for deviceID and returns it with its expiry.
// Used by: DeviceHandler
func (t *Tokens) GenerateToken(deviceID string) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret is not set")
	}
	now := t.now()
	expires := now.Add(t.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"device_id": deviceID,
		"iat":       now.Unix(),
		"exp":       expires.Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken checks tokenString and returns the device it was issued to.
func (t *Tokens) ParseToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrNoToken
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	deviceID, ok := claims["device_id"].(string)
	if !ok || deviceID == "" {
		return "", fmt.Errorf("token has no device_id")
	}
	return deviceID, nil
}

// GetDeviceIDFromToken reads the bearer token from the Authorization header.
// Used by: AuthMiddleware
func (t *Tokens) GetDeviceIDFromToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}
	return t.ParseToken(strings.TrimPrefix(header, "Bearer "))
}
