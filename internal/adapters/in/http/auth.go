package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type actorKey struct{}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token whose subject is the actor id.
func IssueToken(secret string, actor kernel.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: actor.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry and returns the actor.
func ParseToken(secret, raw string) (kernel.Actor, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if !token.Valid {
		return kernel.Actor{}, ErrUnauthenticated
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return kernel.NewActor(id, role)
}

// JWTMiddleware rejects requests without a valid bearer token and stores the
// actor in the request context.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "authorization header required (Bearer <token>)",
				})
			}

			actor, err := ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "invalid or expired token",
				})
			}

			req := c.Request()
			c.SetRequest(req.WithContext(WithActor(req.Context(), actor)))
			return next(c)
		}
	}
}

func WithActor(ctx context.Context, actor kernel.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ContextIdentityProvider reads the actor placed in the context by JWTMiddleware.
type ContextIdentityProvider struct{}

func (ContextIdentityProvider) CurrentActor(ctx context.Context) (kernel.Actor, error) {
	actor, ok := ctx.Value(actorKey{}).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, ErrUnauthenticated
	}
	return actor, nil
}

func (p ContextIdentityProvider) IsAuthenticated(ctx context.Context) bool {
	_, err := p.CurrentActor(ctx)
	return err == nil
}
