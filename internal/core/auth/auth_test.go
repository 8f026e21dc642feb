package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")
	tok, expiresIn, err := svc.GenerateAccessToken(&TokenClaims{UserID: "u1", Email: "a@b.c", Role: RoleClient, ClientName: "acme", Category: "snacks"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresIn != 900 {
		t.Errorf("expiresIn: got %d, want 900", expiresIn)
	}

	claims, err := svc.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	scope := claims.Scope()
	if scope.IsAdmin || scope.ClientName != "acme" || scope.Category != "snacks" {
		t.Errorf("scope: got %+v", scope)
	}
}

func TestRejectsForeignTokens(t *testing.T) {
	svc := NewJWTService("secret")

	tok, _, _ := NewJWTService("other").GenerateAccessToken(&TokenClaims{UserID: "u1"})
	if _, err := svc.ValidateAccessToken(tok); err == nil {
		t.Error("token signed with another secret was accepted")
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := refresh.SignedString([]byte("secret"))
	if _, err := svc.ValidateAccessToken(signed); err == nil {
		t.Error("refresh token was accepted as access token")
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, _ = expired.SignedString([]byte("secret"))
	if _, err := svc.ValidateAccessToken(signed); err == nil {
		t.Error("expired token was accepted")
	}
}

func newApp(svc *JWTService) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", AuthMiddleware(svc))
	api.Get("/whoami", func(c *fiber.Ctx) error {
		scope, ok := ScopeFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(scope.ClientName)
	})
	api.Get("/admin", RequireRole(RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	svc := NewJWTService("secret")
	app := newApp(svc)

	client, _, _ := svc.GenerateAccessToken(&TokenClaims{UserID: "u1", Role: RoleClient, ClientName: "acme"})
	clientless, _, _ := svc.GenerateAccessToken(&TokenClaims{UserID: "u2", Role: RoleClient})
	admin, _, _ := svc.GenerateAccessToken(&TokenClaims{UserID: "u3", Role: RoleAdmin})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/api/whoami", "", fiber.StatusUnauthorized},
		{"not bearer", "/api/whoami", "Basic abc", fiber.StatusUnauthorized},
		{"garbage token", "/api/whoami", "Bearer abc", fiber.StatusUnauthorized},
		{"clientless scope", "/api/whoami", "Bearer " + clientless, fiber.StatusForbidden},
		{"client", "/api/whoami", "Bearer " + client, fiber.StatusOK},
		{"admin without client", "/api/whoami", "Bearer " + admin, fiber.StatusOK},
		{"client on admin route", "/api/admin", "Bearer " + client, fiber.StatusForbidden},
		{"admin on admin route", "/api/admin", "Bearer " + admin, fiber.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status: got %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}
