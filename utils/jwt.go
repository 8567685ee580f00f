package utils

import (
	"errors"
	"time"

	"panditseva/models"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	errNoSecret     = errors.New("jwt secret is not configured")
)

// TokenIssuer signs and verifies session tokens with a shared HMAC secret.
// Tokens are normally minted by the identity provider; Generate exists for
// local development and tests.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), now: time.Now}
}

// GenerateToken creates a signed JWT for the session. The token expires after
// the specified duration.
func (t *TokenIssuer) GenerateToken(s models.Session, duration time.Duration) (string, error) {
	if len(t.secret) == 0 {
		return "", errNoSecret
	}
	now := t.now()
	claims := jwt.MapClaims{
		"sub":  s.UserID,
		"role": string(s.Role),
		"name": s.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func (t *TokenIssuer) ValidateToken(tokenString string) (*jwt.Token, error) {
	if len(t.secret) == 0 {
		return nil, errNoSecret
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
}

// SessionFromToken validates the token and extracts the session it carries.
func (t *TokenIssuer) SessionFromToken(tokenString string) (models.Session, error) {
	token, err := t.ValidateToken(tokenString)
	if err != nil {
		return models.Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Session{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Session{}, errors.New("token does not contain a valid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	s := models.Session{UserID: sub, Role: models.Role(role), Name: name}
	if !s.Role.Valid() {
		return models.Session{}, errors.New("token does not contain a valid 'role' claim")
	}
	return s, nil
}
