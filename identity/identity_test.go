package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken(testSecret, "user-1", "participante", "Ana", time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", claims.UserID)
	}
	if claims.Role != "participante" {
		t.Errorf("expected participante, got %q", claims.Role)
	}
	if claims.Name != "Ana" {
		t.Errorf("expected Ana, got %q", claims.Name)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, _ := NewToken(testSecret, "user-1", "participante", "Ana", time.Hour)

	if _, err := Parse(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParse_Expired(t *testing.T) {
	token, _ := NewToken(testSecret, "user-1", "participante", "Ana", -time.Minute)

	if _, err := Parse(token, testSecret); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestIsOrganizer_Normalization(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"sorteador", true},
		{"SORTEADOR", true},
		{" Sorteador ", true},
		{"participante", false},
		{"", false},
	}

	for _, tt := range tests {
		c := &Claims{Role: tt.role}
		if got := c.IsOrganizer(); got != tt.want {
			t.Errorf("IsOrganizer(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestWithUser(t *testing.T) {
	handler := WithUser(testSecret, func(w http.ResponseWriter, r *http.Request) {
		claims, ok := FromContext(r.Context())
		if !ok {
			t.Error("claims missing from context")
		} else if claims.UserID != "user-1" {
			t.Errorf("expected user-1, got %q", claims.UserID)
		}
		w.WriteHeader(http.StatusOK)
	})

	// No token
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	// Garbage token
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad token, got %d", w.Code)
	}

	// Valid token
	token, _ := NewToken(testSecret, "user-1", "participante", "Ana", time.Hour)
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with valid token, got %d", w.Code)
	}
}

func TestRequireOrganizer(t *testing.T) {
	handler := WithUser(testSecret, RequireOrganizer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	token, _ := NewToken(testSecret, "user-1", "participante", "Ana", time.Hour)
	req := httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-organizer, got %d", w.Code)
	}

	token, _ = NewToken(testSecret, "org-1", "sorteador", "Luis", time.Hour)
	req = httptest.NewRequest("POST", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for organizer, got %d", w.Code)
	}
}

func TestRequireAdminKey(t *testing.T) {
	handler := RequireAdminKey("secret-key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("DELETE", "/", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 without key, got %d", w.Code)
	}

	req := httptest.NewRequest("DELETE", "/", nil)
	req.Header.Set("X-Admin-Key", "wrong")
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong key, got %d", w.Code)
	}

	req = httptest.NewRequest("DELETE", "/", nil)
	req.Header.Set("X-Admin-Key", "secret-key")
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for valid key, got %d", w.Code)
	}

	// Empty configured key must never open the door
	open := RequireAdminKey("", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req = httptest.NewRequest("DELETE", "/", nil)
	req.Header.Set("X-Admin-Key", "")
	w = httptest.NewRecorder()
	open(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 when no admin key is configured, got %d", w.Code)
	}
}
