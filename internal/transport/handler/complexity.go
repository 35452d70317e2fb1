package handler

import (
	"net/http"

	"github.com/pep299/update-simplifier/internal/simplifier"
	"github.com/pep299/update-simplifier/internal/transport/response"
)

type Complexity struct {
	maxBodyBytes int64
}

func NewComplexity(maxBodyBytes int64) *Complexity {
	return &Complexity{maxBodyBytes: maxBodyBytes}
}

type complexityRequest struct {
	TechnicalText  string `json:"technical_text"`
	SimplifiedText string `json:"simplified_text"`
}

type complexityResponse struct {
	simplifier.ComplexityAnalysis
	Reasoning string `json:"reasoning"`
}

func (h *Complexity) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req complexityRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}

	if req.TechnicalText == "" || req.SimplifiedText == "" {
		response.WriteBadRequest(w, "technical_text and simplified_text are required")
		return
	}

	analysis := simplifier.AnalyzeComplexity(req.TechnicalText, req.SimplifiedText)
	response.WriteSuccess(w, "Complexity analyzed", complexityResponse{
		ComplexityAnalysis: analysis,
		Reasoning:          simplifier.ComplexityReasoning(analysis),
	})
}
