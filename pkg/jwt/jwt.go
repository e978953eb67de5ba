package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTypeAccess = "access"

// Claims represents JWT claims structure
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// Manager signs and validates HS256 tokens
type Manager struct {
	secret    string
	accessTTL time.Duration
	now       func() time.Time
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{secret: secret, accessTTL: accessTTL, now: time.Now}
}

// GenerateAccessToken returns a signed token and its expiry
func (m *Manager) GenerateAccessToken(userID, username, role string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.accessTTL)

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateAccessToken parses tokenString and checks signature, expiry and type
func (m *Manager) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Type != tokenTypeAccess {
		return nil, fmt.Errorf("invalid token type: expected access, got %s", claims.Type)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user id")
	}

	return claims, nil
}
