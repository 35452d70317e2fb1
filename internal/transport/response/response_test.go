package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	body := map[string]interface{}{"risk_level": "Low", "confidence_score": 0.9}
	if err := WriteJSON(w, http.StatusOK, body); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// bare body, no envelope
	if _, ok := result["status"]; ok {
		t.Error("Expected no status envelope")
	}
	if result["risk_level"] != "Low" {
		t.Errorf("Expected risk_level 'Low', got %v", result["risk_level"])
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter) error
		expected int
		message  string
	}{
		{"internal", func(w http.ResponseWriter) error { return WriteInternalError(w, "Failed to simplify text") }, http.StatusInternalServerError, "Failed to simplify text"},
		{"bad request", func(w http.ResponseWriter) error { return WriteBadRequest(w, "text is required") }, http.StatusBadRequest, "text is required"},
		{"method", func(w http.ResponseWriter) error { return WriteMethodNotAllowed(w, "Method not allowed") }, http.StatusMethodNotAllowed, "Method not allowed"},
		{"not found", func(w http.ResponseWriter) error { return WriteNotFound(w, "Not found") }, http.StatusNotFound, "Not found"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := test.write(w); err != nil {
				t.Fatalf("write failed: %v", err)
			}

			if w.Code != test.expected {
				t.Errorf("Expected status %d, got %d", test.expected, w.Code)
			}

			var result Response
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if result.Status != "error" {
				t.Errorf("Expected status 'error', got '%s'", result.Status)
			}
			if result.Error != test.message {
				t.Errorf("Expected error '%s', got '%s'", test.message, result.Error)
			}
		})
	}
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	if err := WriteSuccess(w, "healthy", map[string]string{"model": "gemini-2.5-flash"}); err != nil {
		t.Fatalf("WriteSuccess failed: %v", err)
	}

	var result struct {
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Status != "success" {
		t.Errorf("Expected status 'success', got '%s'", result.Status)
	}
	if result.Message != "healthy" {
		t.Errorf("Expected message 'healthy', got '%s'", result.Message)
	}
	if result.Data["model"] != "gemini-2.5-flash" {
		t.Errorf("Expected data model, got %v", result.Data)
	}
}
