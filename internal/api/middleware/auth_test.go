package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": "ada@example.com",
		"id":    "64f0c1d2e3a4b5c6d7e8f901",
		"role":  "user",
		"exp":   exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signedToken(t, testSecret, time.Now().Add(time.Hour))
	c, err := runAuth(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if c.Get("email") != "ada@example.com" {
		t.Errorf("email claim not set: %v", c.Get("email"))
	}
	if c.Get("user_id") != "64f0c1d2e3a4b5c6d7e8f901" {
		t.Errorf("user_id claim not set: %v", c.Get("user_id"))
	}
	if c.Get("role") != "user" {
		t.Errorf("role claim not set: %v", c.Get("role"))
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := runAuth(t, "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_BadScheme(t *testing.T) {
	token := signedToken(t, testSecret, time.Now().Add(time.Hour))
	_, err := runAuth(t, "Basic "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signedToken(t, "other-secret", time.Now().Add(time.Hour))
	_, err := runAuth(t, "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signedToken(t, testSecret, time.Now().Add(-time.Minute))
	_, err := runAuth(t, "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != want {
		t.Fatalf("expected status %d, got %d", want, httpErr.Code)
	}
}
