package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	authClient *auth.Client
	adminUIDs  map[string]struct{}
}

func NewAuthMiddleware(ctx context.Context, adminUIDs []string) (*AuthMiddleware, error) {
	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	if projectID == "" {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	admins := make(map[string]struct{}, len(adminUIDs))
	for _, uid := range adminUIDs {
		if uid = strings.TrimSpace(uid); uid != "" {
			admins[uid] = struct{}{}
		}
	}
	return &AuthMiddleware{authClient: client, adminUIDs: admins}, nil
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		c.Set("uid", token.UID)
		c.Set("name", displayName(token))
		c.Set("admin", m.isAdmin(token))
		return next(c)
	}
}

// RequireAdmin wraps RequireAuth with a moderator gate. Moderators are
// identified by the `admin` custom claim or by the ADMIN_UIDS allowlist.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		if isAdmin, _ := c.Get("admin").(bool); !isAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		return next(c)
	})
}

func (m *AuthMiddleware) isAdmin(token *auth.Token) bool {
	if v, ok := token.Claims["admin"].(bool); ok && v {
		return true
	}
	_, ok := m.adminUIDs[token.UID]
	return ok
}

func displayName(token *auth.Token) string {
	if v, ok := token.Claims["name"].(string); ok {
		return v
	}
	return ""
}

// DenyAll rejects every request. It stands in for RequireAuth and
// RequireAdmin when the Firebase client could not be initialized, so a
// misconfigured deployment never exposes authenticated routes.
func DenyAll(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "auth_unavailable"})
	}
}
