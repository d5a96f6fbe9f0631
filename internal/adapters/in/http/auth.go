package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	userIDContextKey = "userID"
	roleContextKey   = "role"

	// RoleAdmin marks tokens allowed to call the admin endpoints.
	RoleAdmin = "admin"
	// RoleUser marks regular customer tokens.
	RoleUser = "user"
)

// Claims is the JWT payload: the subject carries the user id, Role decides
// access to the admin endpoints.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth authenticates requests with HMAC-signed bearer tokens.
type Auth struct {
	secret []byte
}

// NewAuth creates the authentication middleware provider.
func NewAuth(secret string) Auth {
	return Auth{secret: []byte(secret)}
}

// NewToken issues a signed token for the given user and role.
func NewToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Authenticate verifies the bearer token and stores the caller's identity in
// the request context. Tokens signed with anything but HMAC are rejected.
func (a Auth) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "bearer token is required",
			})
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.secret, nil
		})
		if err != nil || !token.Valid {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "invalid or expired token",
			})
		}

		userID, err := kernel.UUIDFromString(claims.Subject)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "token subject is not a valid user id",
			})
		}

		ctx.Set(userIDContextKey, userID)
		ctx.Set(roleContextKey, claims.Role)
		return next(ctx)
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after Authenticate.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if role, _ := ctx.Get(roleContextKey).(string); role != RoleAdmin {
			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "admin role is required",
			})
		}
		return next(ctx)
	}
}

func userIDFromContext(ctx echo.Context) kernel.UUID {
	userID, _ := ctx.Get(userIDContextKey).(kernel.UUID)
	return userID
}

func actorFromContext(ctx echo.Context) kernel.Actor {
	if role, _ := ctx.Get(roleContextKey).(string); role == RoleAdmin {
		return kernel.ActorAdmin
	}
	return kernel.ActorUser
}
