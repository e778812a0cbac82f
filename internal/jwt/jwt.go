package jwt

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusops/college-events/internal/models"
)

// Cookie names used to carry tokens between client and server.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Error variables
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrTokenMalformed = errors.New("token is malformed or has an invalid signature")
)

// Claims is the signed token payload. Access tokens carry the full
// identity (id, username, role); refresh tokens carry only the id.
type Claims struct {
	UserID    int64       `json:"user_id"`
	Username  string      `json:"username,omitempty"`
	Role      models.Role `json:"role,omitempty"`
	TokenType TokenType   `json:"type"`
	jwt.RegisteredClaims
}

// JWT issues and validates signed tokens.
type JWT struct {
	SecretKey  string        // Secret key for signing tokens
	AccessExp  time.Duration // Access token lifetime
	RefreshExp time.Duration // Refresh token lifetime
}

// New creates a new JWT instance.
func New(secretKey string, accessExp, refreshExp time.Duration) *JWT {
	return &JWT{
		SecretKey:  secretKey,
		AccessExp:  accessExp,
		RefreshExp: refreshExp,
	}
}

// GenerateAccess creates a signed access token for the given user.
func (j *JWT) GenerateAccess(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GenerateRefresh creates a signed refresh token for the given user.
func (j *JWT) GenerateRefresh(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    user.ID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.RefreshExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// Validate parses the token string and returns its claims if the
// signature, expiry and token type all check out. Presenting a refresh
// token where an access token is expected fails with ErrWrongTokenType.
func (j *JWT) Validate(ctx context.Context, tokenString string, expected TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

// GetTokenFromRequest extracts the access token from the request:
// the access_token cookie first, then the Authorization header.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && strings.TrimSpace(c.Value) != "" {
		return strings.TrimSpace(c.Value), nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authentication token is missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
