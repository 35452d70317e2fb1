package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pep299/update-simplifier/internal/logging"
	"github.com/pep299/update-simplifier/internal/simplifier"
	"github.com/pep299/update-simplifier/internal/transport/response"
)

// TextSimplifier produces a structured result for one technical update.
type TextSimplifier interface {
	Simplify(ctx context.Context, text string) (*simplifier.Result, error)
}

type Simplify struct {
	simplifier   TextSimplifier
	maxBodyBytes int64
}

func NewSimplify(s TextSimplifier, maxBodyBytes int64) *Simplify {
	return &Simplify{
		simplifier:   s,
		maxBodyBytes: maxBodyBytes,
	}
}

type simplifyRequest struct {
	Text json.RawMessage `json:"text"`
}

func (h *Simplify) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req simplifyRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}

	text, err := requireText(req.Text, "text")
	if err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.simplifier.Simplify(r.Context(), text)
	if err != nil {
		if errors.Is(err, simplifier.ErrEmptyText) {
			response.WriteBadRequest(w, err.Error())
			return
		}
		logging.ForRequest(r).Error("simplify failed", "error", err)
		response.WriteInternalError(w, "Failed to simplify text")
		return
	}

	response.WriteJSON(w, http.StatusOK, result)
}

// decodeBody reads one JSON object from a size-limited body.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errors.New("Request body too large")
		}
		return errors.New("Invalid JSON")
	}
	return nil
}

// requireText accepts only a non-blank JSON string.
func requireText(raw json.RawMessage, field string) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errors.New(field + " is required")
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", errors.New(field + " must be a string")
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New(field + " is required")
	}
	return text, nil
}
