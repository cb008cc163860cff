package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube_server/models"
	"vidtube_server/services"
)

func authedHandler(t *testing.T, tokens *services.TokenService) (http.Handler, *string) {
	t.Helper()
	var seenActor string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenActor = ActorID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return Auth(tokens)(inner), &seenActor
}

func issueAccessToken(t *testing.T, tokens *services.TokenService, userID string) string {
	t.Helper()
	access, _, err := tokens.GenerateTokens(&models.User{UserID: userID, Username: "alice", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	return access
}

func TestAuthBearerToken(t *testing.T) {
	tokens := services.NewTokenService("access-secret", "refresh-secret")
	handler, seenActor := authedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueAccessToken(t, tokens, "u1"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seenActor != "u1" {
		t.Fatalf("actor = %q, want u1", *seenActor)
	}
}

func TestAuthCookieToken(t *testing.T) {
	tokens := services.NewTokenService("access-secret", "refresh-secret")
	handler, seenActor := authedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: issueAccessToken(t, tokens, "u2")})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seenActor != "u2" {
		t.Fatalf("actor = %q, want u2", *seenActor)
	}
}

func TestAuthAnonymousPassThrough(t *testing.T) {
	tokens := services.NewTokenService("access-secret", "refresh-secret")
	handler, seenActor := authedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want anonymous requests to pass through", rec.Code)
	}
	if *seenActor != "" {
		t.Fatalf("actor = %q, want empty for anonymous", *seenActor)
	}
}

func TestAuthRejectsBadCredentials(t *testing.T) {
	tokens := services.NewTokenService("access-secret", "refresh-secret")
	forged := issueAccessToken(t, services.NewTokenService("other-secret", "refresh-secret"), "u1")

	tests := []struct {
		name  string
		apply func(*http.Request)
	}{
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "Token abc") }},
		{"garbage bearer token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") }},
		{"wrong signing secret", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+forged) }},
		{"bad cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "accessToken", Value: "junk"}) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := authedHandler(t, tokens)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.apply(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
		})
	}
}
