package simplifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pep299/update-simplifier/internal/llm"
)

// Audience selects the system prompt of a brief.
type Audience string

const (
	AudienceExecutive Audience = "Executive"
	AudienceManager   Audience = "Manager"
	AudienceClient    Audience = "Client"
	AudienceIntern    Audience = "Intern"
)

var audiencePrompts = map[Audience]string{
	AudienceExecutive: `You are simplifying technical content for C-level executives.
CRITICAL RULES:
- Maximum 2-3 short sentences (15-25 words each)
- Focus ONLY on: business impact, ROI, strategic value
- NO technical jargon - use business language only
- Start with the bottom line (what it means for the business)
- Format: One focused paragraph, no bullet points
Example: "This modernizes our infrastructure to handle 3x more customers while cutting costs by 20%. Implementation takes 6 weeks with minimal disruption. Expected ROI within 4 months."`,

	AudienceManager: `You are simplifying technical content for project managers and team leads.
CRITICAL RULES:
- Maximum 3-4 concise sentences (20-30 words each)
- Focus on: timeline, resources needed, risks, team impact
- Minimal technical terms - explain any you must use
- Include one practical next step
- Format: One clear paragraph
Example: "We're breaking the system into smaller, independent pieces that teams can update separately. This means faster releases and easier troubleshooting. Requires 2-week setup with DevOps team. Main risk is initial learning curve for developers."`,

	AudienceClient: `You are simplifying technical content for non-technical clients.
CRITICAL RULES:
- Maximum 2-3 very simple sentences (12-20 words each)
- Focus ONLY on: what they get, when they get it, why it matters to them
- ZERO technical jargon - use everyday language
- Emphasize benefits and deliverables
- Format: One friendly paragraph
Example: "We're upgrading your system to handle more users smoothly. You'll see faster performance and can grow without slowdowns. Ready in 3 weeks with no downtime."`,

	AudienceIntern: `You are simplifying technical content for interns or beginners.
CRITICAL RULES:
- Maximum 4-5 simple sentences (15-25 words each)
- Explain technical terms in plain language
- Use analogies when helpful
- Focus on learning and understanding
- Format: One educational paragraph
Example: "Think of microservices like a restaurant kitchen - each station (desserts, mains, etc.) works independently. If one station has issues, others keep running. This makes the whole system more reliable and easier to fix. We'll use Docker (like standardized containers) to package everything consistently."`,
}

// ParseAudience matches name case-insensitively. Unknown or empty names map to Manager.
func ParseAudience(name string) Audience {
	for audience := range audiencePrompts {
		if strings.EqualFold(strings.TrimSpace(name), string(audience)) {
			return audience
		}
	}
	return AudienceManager
}

// Usage is the token accounting of one model call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Brief is a plain-text rewrite for one audience.
type Brief struct {
	Audience       Audience  `json:"audience"`
	SimplifiedText string    `json:"simplified_text"`
	Model          string    `json:"model"`
	Usage          Usage     `json:"usage"`
	CreatedAt      time.Time `json:"created_at"`
}

// Brief rewrites text for audience with a single plain-text model call.
func (s *Service) Brief(ctx context.Context, text string, audience Audience) (*Brief, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	prompt, ok := audiencePrompts[audience]
	if !ok {
		audience = AudienceManager
		prompt = audiencePrompts[AudienceManager]
	}

	resp, err := s.generator.Generate(ctx, llm.Request{
		SystemPrompt: prompt,
		Prompt:       "Simplify this technical/business content:\n\n" + text,
	})
	s.record(OperationBrief, resp, err)
	if err != nil {
		return nil, fmt.Errorf("generating brief: %w", err)
	}

	return &Brief{
		Audience:       audience,
		SimplifiedText: strings.TrimSpace(resp.Text),
		Model:          s.generator.Model(),
		Usage: Usage{
			PromptTokens:     resp.PromptTokens,
			CompletionTokens: resp.CompletionTokens,
			TotalTokens:      resp.PromptTokens + resp.CompletionTokens,
		},
		CreatedAt: time.Now().UTC(),
	}, nil
}
