package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pep299/update-simplifier/internal/logging"
	"github.com/pep299/update-simplifier/internal/simplifier"
	"github.com/pep299/update-simplifier/internal/transport/response"
)

// Briefer rewrites text for one audience.
type Briefer interface {
	Brief(ctx context.Context, text string, audience simplifier.Audience) (*simplifier.Brief, error)
}

type Brief struct {
	briefer      Briefer
	maxBodyBytes int64
}

func NewBrief(b Briefer, maxBodyBytes int64) *Brief {
	return &Brief{
		briefer:      b,
		maxBodyBytes: maxBodyBytes,
	}
}

type briefRequest struct {
	Text     json.RawMessage `json:"text"`
	Audience string          `json:"audience"`
}

func (h *Brief) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req briefRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}

	text, err := requireText(req.Text, "text")
	if err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}

	brief, err := h.briefer.Brief(r.Context(), text, simplifier.ParseAudience(req.Audience))
	if err != nil {
		if errors.Is(err, simplifier.ErrEmptyText) {
			response.WriteBadRequest(w, err.Error())
			return
		}
		logging.ForRequest(r).Error("brief failed", "audience", req.Audience, "error", err)
		response.WriteInternalError(w, "Failed to simplify text")
		return
	}

	response.WriteSuccess(w, "Brief created", brief)
}
