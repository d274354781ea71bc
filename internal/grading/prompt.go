package grading

import (
	"fmt"
	"strings"
)

// Recognized problem categories. Matching is exact-case on purpose: the
// stored category values are controlled by the problem catalogue, and any
// other value falls back to generic wording.
const (
	CategoryCaseStudy   = "Case Study"
	CategoryGuesstimate = "Guesstimate"
)

const promptScoreContract = `IMPORTANT: You must provide your evaluation in TWO PARTS:

PART 1 - SCORES (in exactly this format):
overall_score = [number between 0-10]
structure_score = [number between 0-10]
quantitative_score = [number between 0-10]
creativity_score = [number between 0-10]
communication_score = [number between 0-10]

PART 2 - FEEDBACK:
Relevance: [Yes/No] - [brief explanation]

Strengths:
* [strength 1]
* [strength 2]
* [strength 3]

Areas for Improvement:
* [area 1]
* [area 2]
* [area 3]

Final Assessment: [2-3 sentence summary without mentioning scores]

Evaluate all aspects thoroughly and provide honest, specific feedback.`

// BuildPrompt assembles the evaluator prompt for a problem and a candidate
// answer. The fixed score block it requests is what makes the structured
// extraction pass cheap and reliable, so the wording must stay in sync with
// the extractor's token patterns.
func BuildPrompt(title, description, category, answer string) string {
	var b strings.Builder

	switch category {
	case CategoryCaseStudy, CategoryGuesstimate:
		lowered := strings.ToLower(category)
		fmt.Fprintf(&b, "You are an expert consultant evaluating a response to a %s.\n\n", lowered)
		fmt.Fprintf(&b, "Here is the %s:\n", lowered)
	default:
		b.WriteString("You are an expert consultant evaluating a response to a problem.\n\n")
		b.WriteString("Here is the problem:\n")
	}

	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(description)
	b.WriteString("\n\nHere is the candidate's response:\n")
	b.WriteString(answer)
	b.WriteString("\n\n")
	b.WriteString(promptScoreContract)
	b.WriteString("\n")

	return b.String()
}
