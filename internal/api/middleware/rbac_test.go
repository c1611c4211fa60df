package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRBAC(t *testing.T, role interface{}, allowed ...string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	handler := RBAC(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return handler(c)
}

func TestRBAC_AllowedRole(t *testing.T) {
	if err := runRBAC(t, "admin", "admin"); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
}

func TestRBAC_DisallowedRole(t *testing.T) {
	assertHTTPStatus(t, runRBAC(t, "user", "admin"), http.StatusForbidden)
}

func TestRBAC_MissingRole(t *testing.T) {
	assertHTTPStatus(t, runRBAC(t, nil, "admin"), http.StatusForbidden)
}

func TestRBAC_NonStringRole(t *testing.T) {
	assertHTTPStatus(t, runRBAC(t, 42, "admin"), http.StatusForbidden)
}
