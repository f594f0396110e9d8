package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthDisabledGrantsAdmin(t *testing.T) {
	SetAuthForTest("", "", "", "")

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	w := httptest.NewRecorder()

	RequireAdmin(okHandler)(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected open access without configured auth, got %d", w.Code)
	}
}

func TestAuthRejectsMissingCredentials(t *testing.T) {
	SetAuthForTest("admin", "secret", "", "")
	defer SetAuthForTest("", "", "", "")

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	w := httptest.NewRecorder()

	RequireAnyRole(okHandler)(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate challenge header")
	}
}

func TestAuthRejectsWrongPassword(t *testing.T) {
	SetAuthForTest("admin", "secret", "", "")
	defer SetAuthForTest("", "", "", "")

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	req.SetBasicAuth("admin", "wrong")
	w := httptest.NewRecorder()

	RequireAnyRole(okHandler)(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong password, got %d", w.Code)
	}
}

func TestAuthAdminRole(t *testing.T) {
	SetAuthForTest("admin", "secret", "op", "oppass")
	defer SetAuthForTest("", "", "", "")

	req := httptest.NewRequest("GET", "/api/scenarios", nil)
	req.SetBasicAuth("admin", "secret")
	w := httptest.NewRecorder()

	RequireAdmin(okHandler)(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected admin access, got %d", w.Code)
	}
}

func TestAuthOperatorRole(t *testing.T) {
	SetAuthForTest("admin", "secret", "op", "oppass")
	defer SetAuthForTest("", "", "", "")

	// Operator passes the any-role gate
	req := httptest.NewRequest("POST", "/api/solve", nil)
	req.SetBasicAuth("op", "oppass")
	w := httptest.NewRecorder()

	RequireAnyRole(okHandler)(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected operator access on any-role endpoint, got %d", w.Code)
	}

	// But not the admin-only gate
	req = httptest.NewRequest("GET", "/api/runs", nil)
	req.SetBasicAuth("op", "oppass")
	w = httptest.NewRecorder()

	RequireAdmin(okHandler)(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for operator on admin endpoint, got %d", w.Code)
	}
}
