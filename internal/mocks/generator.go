package mocks

import (
	"context"
	"sync"

	"github.com/pep299/update-simplifier/internal/llm"
)

// MockGenerator is a scripted llm.Generator that remembers its requests.
type MockGenerator struct {
	ModelName string
	Response  *llm.Response
	Err       error

	mu       sync.Mutex
	requests []llm.Request
}

// NewMockGenerator returns a generator answering every call with text.
func NewMockGenerator(text string) *MockGenerator {
	return &MockGenerator{
		ModelName: "mock-model",
		Response:  &llm.Response{Text: text, FinishReason: "STOP", PromptTokens: 12, CompletionTokens: 34},
	}
}

// NewFailingGenerator returns a generator failing every call with err.
func NewFailingGenerator(err error) *MockGenerator {
	return &MockGenerator{ModelName: "mock-model", Err: err}
}

func (m *MockGenerator) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	resp := *m.Response
	return &resp, nil
}

func (m *MockGenerator) Model() string {
	return m.ModelName
}

// Calls returns the number of Generate calls.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or the zero value.
func (m *MockGenerator) LastRequest() llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return llm.Request{}
	}
	return m.requests[len(m.requests)-1]
}
