package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/miniblog/blog-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   int
		wantStatus string
	}{
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound, "fail"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "fail"},
		{"owner not found", domain.ErrOwnerNotFound, http.StatusNotFound, "fail"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, "fail"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "fail"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "fail"},
		{"validation", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest, "fail"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Errorf("status code: got %d, want %d", code, tc.wantCode)
			}
			if body.Status != tc.wantStatus || body.Code != tc.wantCode {
				t.Errorf("envelope mismatch: %+v", body)
			}
			if body.Message == "" {
				t.Error("envelope carries no message")
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	code, body := renderError(t, fmt.Errorf("delete post: %w", domain.ErrPostNotFound))
	if code != http.StatusNotFound || body.Message != "post not found" {
		t.Fatalf("wrapped sentinel not unwrapped: %d %+v", code, body)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if code != http.StatusUnauthorized || body.Message != "invalid token" {
		t.Fatalf("echo error not passed through: %d %+v", code, body)
	}
	if body.Status != "fail" {
		t.Fatalf("4xx must use the fail status: %+v", body)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("unexpected error must map to 500, got %d", code)
	}
	if body.Status != "error" {
		t.Fatalf("5xx must use the error status: %+v", body)
	}
	// Internal details never leak to the client.
	if body.Message != "internal server error" {
		t.Fatalf("leaked internals: %q", body.Message)
	}
}
