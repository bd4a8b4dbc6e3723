package api

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	domain "github.com/avinash111921/MovieHub/domain/user"
	"github.com/gofiber/fiber/v2"
)

type fakeAuthPort struct {
	claims *domain.Claims
	err    error
}

func (f *fakeAuthPort) ValidateToken(_ context.Context, _ string) (*domain.Claims, error) {
	return f.claims, f.err
}

func (f *fakeAuthPort) GetUser(_ context.Context, _ string) (*domain.Public, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthPort) ListUsers(_ context.Context, _ string) ([]*domain.Public, error) {
	return nil, errors.New("not implemented")
}

func newProtectedApp(port *fakeAuthPort) *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(port), func(c *fiber.Ctx) error {
		claims := claimsFromContext(c)
		return c.SendString(claims.UserID)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		port       *fakeAuthPort
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			port:       &fakeAuthPort{claims: &domain.Claims{UserID: "u1"}},
			wantStatus: fiber.StatusOK,
			wantBody:   "u1",
		},
		{
			name:       "missing header",
			authHeader: "",
			port:       &fakeAuthPort{},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			port:       &fakeAuthPort{},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			port:       &fakeAuthPort{},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer bad-token",
			port:       &fakeAuthPort{err: errors.New("token validation failed")},
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newProtectedApp(tt.port)

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != tt.wantBody {
					t.Errorf("body = %q, want %q", body, tt.wantBody)
				}
			}
		})
	}
}
