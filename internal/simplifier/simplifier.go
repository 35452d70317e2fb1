package simplifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pep299/update-simplifier/internal/llm"
	"github.com/pep299/update-simplifier/internal/usage"
)

const (
	OperationSimplify = "simplify"
	OperationBrief    = "brief"
)

// ErrEmptyText is returned before any model call when the input is blank.
var ErrEmptyText = errors.New("text is required")

// UsageRecorder receives one entry per model call.
type UsageRecorder interface {
	Record(call usage.Call)
}

// Service turns technical updates into stakeholder-facing results.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	generator llm.Generator
	usage     UsageRecorder
}

// New creates a Service. recorder may be nil.
func New(generator llm.Generator, recorder UsageRecorder) *Service {
	return &Service{
		generator: generator,
		usage:     recorder,
	}
}

// Model returns the identifier of the underlying model.
func (s *Service) Model() string {
	return s.generator.Model()
}

// Simplify runs one schema-constrained model call for text.
// Remote and decoding failures are returned as-is; there is no retry.
func (s *Service) Simplify(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := s.generator.Generate(ctx, llm.Request{
		Prompt:          BuildPrompt(text),
		SchemaName:      resultSchemaName,
		Schema:          ResultSchema,
		Temperature:     llm.Temp(simplifyTemperature),
		MaxOutputTokens: simplifyMaxOutputTokens,
	})
	s.record(OperationSimplify, resp, err)
	if err != nil {
		return nil, fmt.Errorf("generating result: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(resp.Text), &result); err != nil {
		return nil, fmt.Errorf("decoding result (finish reason %q): %w", resp.FinishReason, err)
	}
	if result.DetectedJargon == nil {
		result.DetectedJargon = []string{}
	}

	if notes := result.advisories(); len(notes) > 0 {
		slog.WarnContext(ctx, "model result outside prompt constraints",
			"model", s.generator.Model(),
			"advisories", notes)
	}

	return &result, nil
}

func (s *Service) record(operation string, resp *llm.Response, err error) {
	if s.usage == nil {
		return
	}
	call := usage.Call{
		Operation: operation,
		Model:     s.generator.Model(),
		Failed:    err != nil,
	}
	if resp != nil {
		call.PromptTokens = resp.PromptTokens
		call.CompletionTokens = resp.CompletionTokens
	}
	s.usage.Record(call)
}
