package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	SubjectKey contextKey = "auth_subject"
	DeviceKey  contextKey = "auth_device"
)

// Claims carried by medclip bearer tokens. Device distinguishes the phone
// client from the desktop browser; both map to the same subject.
type Claims struct {
	jwt.RegisteredClaims
	Device string `json:"device,omitempty"`
}

// JWTMiddleware returns middleware that validates HS256 bearer tokens signed
// with the shared secret. It is enabled when AUTH_SECRET is configured;
// deployments without it run open, which matches the pairing-code model
// where the storage code itself is the shared secret between devices.
func JWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(string(SubjectKey), claims.Subject)
			c.Set(string(DeviceKey), claims.Device)
			return next(c)
		}
	}
}

// DevAuthMiddleware passes every request through with a fixed dev subject.
func DevAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(string(SubjectKey), "dev-user")
			c.Set(string(DeviceKey), "dev")
			return next(c)
		}
	}
}
