package simplifier

import (
	"strings"

	"github.com/pep299/update-simplifier/internal/llm"
)

// Result is the structured analysis of one technical update.
// The JSON field set is exactly the one declared to the model.
type Result struct {
	TechnicalText              string   `json:"technical_text"`
	DetectedJargon             []string `json:"detected_jargon"`
	SimpleExplanation          string   `json:"simple_explanation"`
	BusinessImpact             string   `json:"business_impact"`
	RiskLevel                  string   `json:"risk_level"`
	ImpactCategory             string   `json:"impact_category"`
	ConfidenceScore            float64  `json:"confidence_score"`
	ComplexityReductionPercent float64  `json:"complexity_reduction_percent"`
}

// ResultSchema is the output schema sent with every simplify call.
var ResultSchema = llm.GenerateSchema[Result]()

const resultSchemaName = "simplify_result"

// RiskLevel values the prompt rubric asks for. The schema leaves the field open.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// IsKnown reports whether r is one of the rubric levels, ignoring case.
func (r RiskLevel) IsKnown() bool {
	for _, level := range []RiskLevel{RiskLow, RiskMedium, RiskHigh} {
		if strings.EqualFold(string(r), string(level)) {
			return true
		}
	}
	return false
}

// ExcludedJargonVerbs are the change-describing verbs the prompt keeps out of detected_jargon.
var ExcludedJargonVerbs = []string{"refactored", "optimized", "improved", "enhanced"}

// advisories lists the prompt-level constraints the result does not meet.
// They are informational; the result is returned unchanged.
func (r *Result) advisories() []string {
	var out []string
	if r.ConfidenceScore < 0 || r.ConfidenceScore > 1 {
		out = append(out, "confidence_score outside [0,1]")
	}
	if r.ComplexityReductionPercent < 0 || r.ComplexityReductionPercent > 100 {
		out = append(out, "complexity_reduction_percent outside [0,100]")
	}
	if !RiskLevel(r.RiskLevel).IsKnown() {
		out = append(out, "risk_level not in Low/Medium/High")
	}
	for _, term := range r.DetectedJargon {
		for _, verb := range ExcludedJargonVerbs {
			if strings.EqualFold(strings.TrimSpace(term), verb) {
				out = append(out, "detected_jargon contains excluded verb "+verb)
			}
		}
	}
	return out
}
