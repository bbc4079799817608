package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims Claims, secret []byte) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (error, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)
	return err, c
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Device: "phone",
	}
	token := signToken(t, claims, testSecret)

	err, c := invoke(t, JWTMiddleware(testSecret), "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := c.Get(string(SubjectKey)).(string); got != "user-1" {
		t.Errorf("expected subject user-1, got %q", got)
	}
	if got, _ := c.Get(string(DeviceKey)).(string); got != "phone" {
		t.Errorf("expected device phone, got %q", got)
	}
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	err, _ := invoke(t, JWTMiddleware(testSecret), "")
	if err == nil {
		t.Error("expected error for missing header")
	}
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := signToken(t, claims, []byte("other-secret"))

	err, _ := invoke(t, JWTMiddleware(testSecret), "Bearer "+token)
	if err == nil {
		t.Error("expected error for token signed with wrong secret")
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token := signToken(t, claims, testSecret)

	err, _ := invoke(t, JWTMiddleware(testSecret), "Bearer "+token)
	if err == nil {
		t.Error("expected error for expired token")
	}
}

func TestDevAuthMiddleware(t *testing.T) {
	err, c := invoke(t, DevAuthMiddleware(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := c.Get(string(SubjectKey)).(string); got != "dev-user" {
		t.Errorf("expected dev-user subject, got %q", got)
	}
}
