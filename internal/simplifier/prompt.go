package simplifier

import "fmt"

const (
	simplifyTemperature     = 0.2
	simplifyMaxOutputTokens = 800
)

const simplifyPromptTemplate = `
Technical Update:
%s

Instructions:

1. Extract ONLY true technical jargon terms:
   - Technologies (Redis, Kubernetes, TensorFlow, etc.)
   - Architectures (microservices architecture, event-driven architecture)
   - Systems, protocols, infrastructure terms

2. DO NOT include verbs like:
   - refactored
   - optimized
   - improved
   - enhanced

3. detected_jargon must only contain technical nouns and phrases.

4. Rewrite the update for non-technical business stakeholders.

5. Explain business impact clearly.

6. Assign realistic risk level:
   Low → safe optimization
   Medium → moderate change
   High → risky or breaking change

7. Estimate confidence_score between 0 and 1

8. Estimate complexity_reduction_percent between 0 and 100

Return valid structured JSON.
`

// BuildPrompt embeds text verbatim into the simplify template.
func BuildPrompt(text string) string {
	return fmt.Sprintf(simplifyPromptTemplate, text)
}
