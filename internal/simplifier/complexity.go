package simplifier

import (
	"fmt"
	"math"
	"strings"
)

// technicalTerms is the fixed vocabulary the complexity heuristic counts.
var technicalTerms = []string{
	"api", "database", "kubernetes", "docker", "microservice", "deployment",
	"architecture", "authentication", "encryption", "scalability", "optimization",
	"infrastructure", "pipeline", "container", "orchestration", "synergy",
	"leverage", "paradigm", "ecosystem", "framework", "middleware",
}

// TextMetrics describes one side of a comparison.
type TextMetrics struct {
	WordCount       int `json:"word_count"`
	JargonCount     int `json:"jargon_count"`
	ComplexityScore int `json:"complexity_score"`
}

// Reduction describes the change from original to simplified text.
type Reduction struct {
	Percentage      int `json:"percentage"`
	WordCountChange int `json:"word_count_change"`
	JargonReduction int `json:"jargon_reduction"`
}

// ComplexityAnalysis is a local, model-free comparison of two texts.
type ComplexityAnalysis struct {
	Original   TextMetrics `json:"original"`
	Simplified TextMetrics `json:"simplified"`
	Reduction  Reduction   `json:"reduction"`
}

// AnalyzeComplexity compares original and simplified text with a keyword heuristic.
// A term counts once per text no matter how often it appears.
func AnalyzeComplexity(original, simplified string) ComplexityAnalysis {
	originalWords := wordCount(original)
	simplifiedWords := wordCount(simplified)
	originalJargon := countTerms(original)
	simplifiedJargon := countTerms(simplified)

	originalComplexity := math.Min(100, float64(originalJargon)/float64(originalWords)*1000+50)
	simplifiedComplexity := math.Min(100, float64(simplifiedJargon)/float64(simplifiedWords)*1000+20)

	return ComplexityAnalysis{
		Original: TextMetrics{
			WordCount:       originalWords,
			JargonCount:     originalJargon,
			ComplexityScore: int(math.Round(originalComplexity)),
		},
		Simplified: TextMetrics{
			WordCount:       simplifiedWords,
			JargonCount:     simplifiedJargon,
			ComplexityScore: int(math.Round(simplifiedComplexity)),
		},
		Reduction: Reduction{
			Percentage:      int(math.Round((originalComplexity - simplifiedComplexity) / originalComplexity * 100)),
			WordCountChange: simplifiedWords - originalWords,
			JargonReduction: originalJargon - simplifiedJargon,
		},
	}
}

// ComplexityReasoning explains an analysis in one sentence.
func ComplexityReasoning(a ComplexityAnalysis) string {
	var reasons []string

	if n := a.Reduction.JargonReduction; n > 0 {
		suffix := ""
		if n > 1 {
			suffix = "s"
		}
		reasons = append(reasons, fmt.Sprintf("removed %d technical term%s", n, suffix))
	}

	switch change := a.Reduction.WordCountChange; {
	case change < -20:
		reasons = append(reasons, fmt.Sprintf("condensed content by %d words", -change))
	case change > 20:
		reasons = append(reasons, fmt.Sprintf("expanded with %d additional clarifying words", change))
	}

	if a.Original.ComplexityScore > 70 {
		reasons = append(reasons, "simplified complex sentence structures")
	}
	if a.Reduction.Percentage > 50 {
		reasons = append(reasons, "converted technical language to plain English")
	}

	if len(reasons) == 0 {
		return fmt.Sprintf("Complexity reduced by %d%% through general simplification and improved readability.", a.Reduction.Percentage)
	}
	return fmt.Sprintf("Complexity reduced by %d%% by %s.", a.Reduction.Percentage, strings.Join(reasons, ", "))
}

// wordCount never returns zero so the scores stay finite.
func wordCount(text string) int {
	if n := len(strings.Fields(text)); n > 0 {
		return n
	}
	return 1
}

func countTerms(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, term := range technicalTerms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}
