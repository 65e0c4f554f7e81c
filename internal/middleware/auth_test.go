package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewAuthMiddlewareRequiresProjectID(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "")
	if _, err := NewAuthMiddleware(context.Background(), nil); err == nil {
		t.Fatal("expected error when FIREBASE_PROJECT_ID is unset")
	}
}

func TestDenyAllRejectsWithoutInvokingHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/listings/1/approve", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	invoked := false
	h := DenyAll(func(c echo.Context) error {
		invoked = true
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if err := h(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if invoked {
		t.Fatal("protected handler ran without an authenticated actor")
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want=%d", rec.Code, http.StatusServiceUnavailable)
	}
}
