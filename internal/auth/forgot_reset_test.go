package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/noah-isme/backend-gstbill/internal/common"
)

func TestForgotResetFlow(t *testing.T) {
	queries := newFakeQueries()
	mailer := &common.InMemoryEmail{}
	seedApprovedUser(t, queries, "reset@example.com", "hunter2!!")

	svc, err := NewService(Config{
		Queries:         queries,
		Secret:          "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		ResetTokenTTL:   time.Hour,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	handler := &Handler{
		Service:           svc,
		Mailer:            mailer,
		RefreshCookieName: "rt",
		CookieSameSite:    http.SameSiteLaxMode,
		PublicBaseURL:     "https://example.com",
	}

	// Seed a session that should be revoked after password reset.
	loginBody := bytes.NewBufferString(`{"email":"reset@example.com","password":"hunter2!!"}`)
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", loginBody)
	loginRec := httptest.NewRecorder()
	handler.Login(loginRec, loginReq)
	loginRes := loginRec.Result()
	if loginRes.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", loginRes.StatusCode)
	}
	_ = loginRes.Body.Close()
	if queries.activeSessionCount() != 1 {
		t.Fatalf("expected session created during login")
	}

	// Trigger forgot password.
	forgotBody := bytes.NewBufferString(`{"email":"reset@example.com"}`)
	forgotReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password/forgot", forgotBody)
	forgotRec := httptest.NewRecorder()
	handler.Forgot(forgotRec, forgotReq)
	forgotRes := forgotRec.Result()
	if forgotRes.StatusCode != http.StatusAccepted {
		t.Fatalf("unexpected forgot status: %d", forgotRes.StatusCode)
	}
	_ = forgotRes.Body.Close()
	if len(mailer.Outbox) != 1 {
		t.Fatalf("expected email sent, got %d", len(mailer.Outbox))
	}
	token := extractTokenFromEmail(mailer.Outbox[0].HTML)
	if token == "" {
		t.Fatalf("expected reset token in email body")
	}

	// Complete reset with the token.
	resetPayload := map[string]string{
		"token":    token,
		"password": "newPassw0rd!",
	}
	buf, _ := json.Marshal(resetPayload)
	resetReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password/reset", bytes.NewBuffer(buf))
	resetRec := httptest.NewRecorder()
	handler.Reset(resetRec, resetReq)
	resetRes := resetRec.Result()
	if resetRes.StatusCode != http.StatusOK {
		t.Fatalf("unexpected reset status: %d", resetRes.StatusCode)
	}
	_ = resetRes.Body.Close()

	if reset := queries.resetsByHash[hashToken(token)]; !reset.UsedAt.Valid {
		t.Fatalf("expected password reset marked used")
	}
	if queries.activeSessionCount() != 0 {
		t.Fatalf("expected sessions revoked after reset")
	}

	// Token reuse should fail.
	reuseReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password/reset", bytes.NewBuffer(buf))
	reuseRec := httptest.NewRecorder()
	handler.Reset(reuseRec, reuseReq)
	reuseRes := reuseRec.Result()
	if reuseRes.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request on token reuse, got %d", reuseRes.StatusCode)
	}
	_ = reuseRes.Body.Close()

	// Login with new password should succeed.
	mailer.Outbox = nil
	newLoginBody := bytes.NewBufferString(`{"email":"reset@example.com","password":"newPassw0rd!"}`)
	newLoginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", newLoginBody)
	newLoginRec := httptest.NewRecorder()
	handler.Login(newLoginRec, newLoginReq)
	newLoginRes := newLoginRec.Result()
	if newLoginRes.StatusCode != http.StatusOK {
		t.Fatalf("expected successful login with new password, got %d", newLoginRes.StatusCode)
	}
	_ = newLoginRes.Body.Close()
}

func extractTokenFromEmail(body string) string {
	idx := strings.Index(body, "token=")
	if idx == -1 {
		return ""
	}
	token := body[idx+len("token="):]
	if i := strings.Index(token, "&"); i >= 0 {
		token = token[:i]
	}
	if i := strings.Index(token, " "); i >= 0 {
		token = token[:i]
	}
	return strings.TrimSpace(token)
}
