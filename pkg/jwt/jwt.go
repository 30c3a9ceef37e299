// Package jwt provides the token based authentication used by the protected REST routes.
package jwt

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/iotaledger/hive.go/ierrors"
)

// Auth issues and verifies JWT tokens for the management API. It governs administrative routes only and
// grants no authority over any user's deposits.
type Auth struct {
	salt           string
	sessionTimeout time.Duration
	nodeID         string
	secret         []byte
}

type AuthClaims struct {
	jwt.StandardClaims
	API bool `json:"api"`
}

func (c *AuthClaims) compare(field string, expected string) bool {
	if field == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(field), []byte(expected)) != 0
}

func (c *AuthClaims) VerifySubject(expected string) bool {
	return c.compare(c.Subject, expected)
}

func NewAuth(salt string, sessionTimeout time.Duration, nodeID string, secret []byte) (*Auth, error) {
	if len(salt) == 0 {
		return nil, ierrors.New("salt must not be empty")
	}
	if len(secret) == 0 {
		return nil, ierrors.New("secret must not be empty")
	}

	return &Auth{
		salt:           salt,
		sessionTimeout: sessionTimeout,
		nodeID:         nodeID,
		secret:         append([]byte(salt), secret...),
	}, nil
}

// IssueJWT issues a new JWT token for the node's management API.
func (a *Auth) IssueJWT() (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:  a.nodeID,
			Issuer:   a.nodeID,
			Audience: a.nodeID,
			Id:       uuid.NewString(),
			IssuedAt: now.Unix(),
		},
		API: true,
	}
	if a.sessionTimeout > 0 {
		claims.ExpiresAt = now.Add(a.sessionTimeout).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to sign JWT token")
	}

	return signed, nil
}

// VerifyJWT checks the given token and calls allow with the parsed claims for the final decision.
func (a *Auth) VerifyJWT(token string, allow func(claims *AuthClaims) bool) bool {
	parsed, err := jwt.ParseWithClaims(token, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierrors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false
	}

	claims, ok := parsed.Claims.(*AuthClaims)
	if !ok {
		return false
	}

	return claims.VerifySubject(a.nodeID) && allow(claims)
}

// Middleware returns an echo middleware that rejects requests to non-skipped routes without a valid
// bearer token.
func (a *Auth) Middleware(skipper middleware.Skipper, allow func(claims *AuthClaims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(auth, "Bearer ")
			if token == auth || !a.VerifyJWT(token, allow) {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid JWT token")
			}

			return next(c)
		}
	}
}
