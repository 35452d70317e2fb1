package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pep299/update-simplifier/internal/llm"
)

type sample struct {
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Score float64  `json:"score"`
}

var _ = Describe("GenerateSchema", func() {
	It("inlines an object schema with every field required", func() {
		schema := llm.GenerateSchema[sample]()

		Expect(schema.Type).To(Equal("object"))
		Expect(schema.Version).To(BeEmpty())
		Expect(schema.Ref).To(BeEmpty())
		Expect(schema.Required).To(ConsistOf("name", "tags", "score"))

		tags, ok := schema.Properties.Get("tags")
		Expect(ok).To(BeTrue())
		Expect(tags.Type).To(Equal("array"))
		Expect(tags.Items.Type).To(Equal("string"))

		score, ok := schema.Properties.Get("score")
		Expect(ok).To(BeTrue())
		Expect(score.Type).To(Equal("number"))
	})

	It("serializes without $schema and closes additional properties", func() {
		data, err := json.Marshal(llm.GenerateSchema[sample]())
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).NotTo(ContainSubstring("$schema"))
		Expect(string(data)).To(ContainSubstring(`"additionalProperties":false`))
	})
})

var _ = Describe("New", func() {
	DescribeTable("selects the provider",
		func(provider, model string) {
			gen, err := llm.New(llm.Config{Provider: provider, Model: model})
			Expect(err).NotTo(HaveOccurred())
			Expect(gen.Model()).To(Equal(model))
		},
		Entry("default is gemini", "", "gemini-2.5-flash"),
		Entry("gemini", llm.ProviderGemini, "gemini-2.5-pro"),
		Entry("openai", llm.ProviderOpenAI, "gpt-4o-mini"),
		Entry("anthropic", llm.ProviderAnthropic, "claude-sonnet-4-5-20250929"),
	)

	It("rejects an unknown provider", func() {
		_, err := llm.New(llm.Config{Provider: "mistral"})
		Expect(err).To(MatchError(ContainSubstring("unsupported LLM provider")))
	})

	It("strips the models/ prefix from gemini model names", func() {
		gen := llm.NewGeminiClient(llm.Config{Model: "models/gemini-2.5-flash"})
		Expect(gen.Model()).To(Equal("gemini-2.5-flash"))
	})
})

var _ = Describe("GeminiClient", func() {
	var (
		server   *httptest.Server
		captured map[string]any
		path     string
		apiKey   string
		status   int
		reply    string
	)

	BeforeEach(func() {
		captured = nil
		status = http.StatusOK
		reply = `{
			"candidates": [{"content": {"parts": [{"text": "{\"name\":"}, {"text": "\"x\"}"}]}, "finishReason": "STOP"}],
			"usageMetadata": {"promptTokenCount": 120, "candidatesTokenCount": 45}
		}`
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			apiKey = r.Header.Get("x-goog-api-key")
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &captured)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(reply))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newClient := func() *llm.GeminiClient {
		return llm.NewGeminiClient(llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "gemini-2.5-flash"})
	}

	It("sends the prompt, schema and generation config", func() {
		resp, err := newClient().Generate(context.Background(), llm.Request{
			Prompt:          "hello",
			SchemaName:      "sample",
			Schema:          llm.GenerateSchema[sample](),
			Temperature:     llm.Temp(0.2),
			MaxOutputTokens: 800,
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(path).To(Equal("/models/gemini-2.5-flash:generateContent"))
		Expect(apiKey).To(Equal("test-key"))

		contents := captured["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		Expect(parts[0].(map[string]any)["text"]).To(Equal("hello"))

		genCfg := captured["generationConfig"].(map[string]any)
		Expect(genCfg["temperature"]).To(BeNumerically("==", 0.2))
		Expect(genCfg["maxOutputTokens"]).To(BeNumerically("==", 800))
		Expect(genCfg["responseMimeType"]).To(Equal("application/json"))
		schema := genCfg["responseJsonSchema"].(map[string]any)
		Expect(schema["type"]).To(Equal("object"))
		Expect(schema["required"]).To(ConsistOf("name", "tags", "score"))
		Expect(captured).NotTo(HaveKey("systemInstruction"))

		Expect(resp.Text).To(Equal(`{"name":"x"}`))
		Expect(resp.FinishReason).To(Equal("STOP"))
		Expect(resp.PromptTokens).To(Equal(120))
		Expect(resp.CompletionTokens).To(Equal(45))
	})

	It("sends a system instruction and no JSON mode for plain text requests", func() {
		_, err := newClient().Generate(context.Background(), llm.Request{
			SystemPrompt: "be brief",
			Prompt:       "hello",
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(captured).To(HaveKey("systemInstruction"))
		genCfg := captured["generationConfig"].(map[string]any)
		Expect(genCfg).NotTo(HaveKey("responseMimeType"))
		Expect(genCfg).NotTo(HaveKey("responseJsonSchema"))
	})

	It("returns an APIError on non-200 responses", func() {
		status = http.StatusForbidden
		reply = `{"error": {"message": "API key not valid"}}`

		_, err := newClient().Generate(context.Background(), llm.Request{Prompt: "hello"})
		Expect(err).To(HaveOccurred())

		var apiErr *llm.APIError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusForbidden))
		Expect(apiErr.Body).To(ContainSubstring("API key not valid"))
	})

	It("fails when the response has no candidates", func() {
		reply = `{"candidates": []}`

		_, err := newClient().Generate(context.Background(), llm.Request{Prompt: "hello"})
		Expect(err).To(MatchError(ContainSubstring("no content in response")))
	})

	It("fails on a malformed body", func() {
		reply = `not json`

		_, err := newClient().Generate(context.Background(), llm.Request{Prompt: "hello"})
		Expect(err).To(MatchError(ContainSubstring("decoding response")))
	})

	It("does not leak the API key into transport errors", func() {
		client := llm.NewGeminiClient(llm.Config{APIKey: "secret-key", BaseURL: "http://127.0.0.1:1"})

		_, err := client.Generate(context.Background(), llm.Request{Prompt: "hello"})
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).NotTo(ContainSubstring("secret-key"))
	})
})

var _ = Describe("OpenAI-compatible provider", func() {
	It("requests a strict json_schema response format", func() {
		var captured map[string]any
		var path string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &captured)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "chatcmpl-1", "object": "chat.completion", "created": 1, "model": "gpt-4o-mini",
				"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "{\"name\":\"x\"}"}}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
			}`))
		}))
		defer server.Close()

		gen, err := llm.New(llm.Config{Provider: llm.ProviderOpenAI, APIKey: "k", BaseURL: server.URL + "/", Model: "gpt-4o-mini"})
		Expect(err).NotTo(HaveOccurred())

		resp, err := gen.Generate(context.Background(), llm.Request{
			Prompt:     "hello",
			SchemaName: "sample",
			Schema:     llm.GenerateSchema[sample](),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(strings.HasSuffix(path, "/chat/completions")).To(BeTrue())
		format := captured["response_format"].(map[string]any)
		Expect(format["type"]).To(Equal("json_schema"))
		Expect(format["json_schema"].(map[string]any)["strict"]).To(BeTrue())

		Expect(resp.Text).To(Equal(`{"name":"x"}`))
		Expect(resp.PromptTokens).To(Equal(10))
		Expect(resp.CompletionTokens).To(Equal(5))
	})
})

var _ = Describe("Anthropic provider", func() {
	It("forces the schema tool and returns its input", func() {
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &captured)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "msg_1", "type": "message", "role": "assistant", "model": "claude",
				"content": [{"type": "tool_use", "id": "toolu_1", "name": "sample", "input": {"name": "x"}}],
				"stop_reason": "tool_use",
				"usage": {"input_tokens": 7, "output_tokens": 3}
			}`))
		}))
		defer server.Close()

		gen, err := llm.New(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "k", BaseURL: server.URL, Model: "claude"})
		Expect(err).NotTo(HaveOccurred())

		resp, err := gen.Generate(context.Background(), llm.Request{
			Prompt:     "hello",
			SchemaName: "sample",
			Schema:     llm.GenerateSchema[sample](),
		})
		Expect(err).NotTo(HaveOccurred())

		choice := captured["tool_choice"].(map[string]any)
		Expect(choice["type"]).To(Equal("tool"))
		Expect(choice["name"]).To(Equal("sample"))

		Expect(resp.Text).To(MatchJSON(`{"name":"x"}`))
		Expect(resp.FinishReason).To(Equal("tool_use"))
		Expect(resp.PromptTokens).To(Equal(7))
	})
})
