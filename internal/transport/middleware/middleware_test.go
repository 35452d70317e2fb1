package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockHandler is a simple handler for testing
func mockHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("success"))
}

func TestCORS_SetsHeaders(t *testing.T) {
	handler := CORS(http.HandlerFunc(mockHandler))

	req := httptest.NewRequest("POST", "/simplify-text", strings.NewReader(`{"text":"x"}`))
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected allow origin '*', got '%s'", got)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected 'success', got '%s'", w.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("OPTIONS", "/simplify-text", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if called {
		t.Error("Expected preflight to stop before the handler")
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Errorf("Expected POST in allowed methods, got '%s'", w.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestLogging_PassesStatusThrough(t *testing.T) {
	tests := []int{http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError}

	for _, status := range tests {
		handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		req := httptest.NewRequest("POST", "/simplify-text", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != status {
			t.Errorf("Expected status %d, got %d", status, w.Code)
		}
	}
}

func TestLogging_ImplicitOK(t *testing.T) {
	handler := Logging(http.HandlerFunc(mockHandler))

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "success" {
		t.Errorf("Expected 200 'success', got %d '%s'", w.Code, w.Body.String())
	}
}
