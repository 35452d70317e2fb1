package handler

import (
	"net/http"

	"github.com/pep299/update-simplifier/internal/transport/response"
)

type Health struct {
	provider string
	model    string
}

func NewHealth(provider, model string) *Health {
	return &Health{provider: provider, model: model}
}

func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, "ok", map[string]string{
		"provider": h.provider,
		"model":    h.model,
	})
}

// Config serves a sanitized configuration view.
type Config struct {
	public map[string]interface{}
}

func NewConfig(public map[string]interface{}) *Config {
	return &Config{public: public}
}

func (h *Config) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.WriteSuccess(w, "", h.public)
}
