package grading

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// scoreField identifies one of the five ScoreSet members.
type scoreField int

const (
	fieldOverall scoreField = iota
	fieldStructure
	fieldQuantitative
	fieldCreativity
	fieldCommunication
)

const number = `(\d+(?:\.\d+)?)`

// Structured pass: the exact tokens the prompt asks the model to emit.
// A match here is authoritative and skips the heuristic pass for that field.
var structuredPatterns = map[scoreField]*regexp.Regexp{
	fieldOverall:       regexp.MustCompile(`(?i)overall_score\s*=\s*` + number),
	fieldStructure:     regexp.MustCompile(`(?i)structure_score\s*=\s*` + number),
	fieldQuantitative:  regexp.MustCompile(`(?i)quantitative_score\s*=\s*` + number),
	fieldCreativity:    regexp.MustCompile(`(?i)creativity_score\s*=\s*` + number),
	fieldCommunication: regexp.MustCompile(`(?i)communication_score\s*=\s*` + number),
}

// Heuristic pass: label patterns tried in order, first in-range match wins.
// Labels vary per category because the historical prompt variants asked for
// different rubric names.
var overallPatterns = compilePatterns(
	`Score:\s*`+number+`\s*/\s*10`,
	`Score:\s*`+number+`\s*out of\s*10`,
	number+`\s*/\s*10`,
	`rated.*?`+number+`\s*/\s*10`,
	`grade.*?`+number+`\s*/\s*10`,
	`rating.*?`+number+`\s*/\s*10`,
	`score.*?`+number+`\s*/\s*10`,
	`Overall Score:?\s*`+number,
)

var categoryPatterns = map[string]map[scoreField][]*regexp.Regexp{
	CategoryCaseStudy: {
		fieldStructure: compilePatterns(
			`Structure & Framework:?\s*`+number+`\s*/\s*10`,
			`Structure:?\s*`+number+`\s*/\s*10`,
			`Framework:?\s*`+number+`\s*/\s*10`,
			`Structure & Framework:?\s*`+number,
		),
		fieldQuantitative: compilePatterns(
			`Quantitative Analysis:?\s*`+number+`\s*/\s*10`,
			`Quantitative:?\s*`+number+`\s*/\s*10`,
			`Analysis:?\s*`+number+`\s*/\s*10`,
			`Quantitative Analysis:?\s*`+number,
		),
		fieldCreativity: compilePatterns(
			`Creativity & Insight:?\s*`+number+`\s*/\s*10`,
			`Creativity:?\s*`+number+`\s*/\s*10`,
			`Insight:?\s*`+number+`\s*/\s*10`,
			`Creativity & Insight:?\s*`+number,
		),
		fieldCommunication: compilePatterns(
			`Communication Clarity:?\s*`+number+`\s*/\s*10`,
			`Communication:?\s*`+number+`\s*/\s*10`,
			`Clarity:?\s*`+number+`\s*/\s*10`,
			`Communication Clarity:?\s*`+number,
		),
	},
	CategoryGuesstimate: {
		fieldStructure: compilePatterns(
			`Approach/Structure:?\s*`+number+`\s*/\s*10`,
			`Approach:?\s*`+number+`\s*/\s*10`,
			`Structure:?\s*`+number+`\s*/\s*10`,
			`Approach/Structure:?\s*`+number,
		),
		fieldQuantitative: compilePatterns(
			`Assumptions Quality:?\s*`+number+`\s*/\s*10`,
			`Assumptions:?\s*`+number+`\s*/\s*10`,
			`Assumptions Quality:?\s*`+number,
		),
		fieldCreativity: compilePatterns(
			`Math Accuracy:?\s*`+number+`\s*/\s*10`,
			`Math:?\s*`+number+`\s*/\s*10`,
			`Accuracy:?\s*`+number+`\s*/\s*10`,
			`Math Accuracy:?\s*`+number,
		),
		fieldCommunication: compilePatterns(
			`Step-by-Step Thinking:?\s*`+number+`\s*/\s*10`,
			`Thinking:?\s*`+number+`\s*/\s*10`,
			`Step-by-Step:?\s*`+number+`\s*/\s*10`,
			`Step-by-Step Thinking:?\s*`+number,
		),
	},
}

// genericPatterns covers problems whose category is neither recognized value.
var genericPatterns = map[scoreField][]*regexp.Regexp{
	fieldStructure: compilePatterns(
		`Structure:?\s*`+number+`\s*/\s*10`,
		`Framework:?\s*`+number+`\s*/\s*10`,
	),
	fieldQuantitative: compilePatterns(
		`Quantitative:?\s*`+number+`\s*/\s*10`,
		`Clarity:?\s*`+number+`\s*/\s*10`,
	),
	fieldCreativity: compilePatterns(
		`Creativity:?\s*`+number+`\s*/\s*10`,
		`Insight:?\s*`+number+`\s*/\s*10`,
	),
	fieldCommunication: compilePatterns(
		`Communication:?\s*`+number+`\s*/\s*10`,
		`Confidence:?\s*`+number+`\s*/\s*10`,
	),
}

func compilePatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(`(?i)`+pattern))
	}
	return compiled
}

// ExtractScores parses free-form feedback text into a full ScoreSet. Fields
// without a confident match keep their documented defaults; extraction never
// fails, an unparseable text simply yields DefaultScores.
func ExtractScores(text, category string) ScoreSet {
	scores := DefaultScores()
	matched := make(map[scoreField]bool, 5)

	for field, pattern := range structuredPatterns {
		if value, ok := firstInRangeMatch([]*regexp.Regexp{pattern}, text); ok {
			setField(&scores, field, value)
			matched[field] = true
		}
	}

	if !matched[fieldOverall] {
		if value, ok := firstInRangeMatch(overallPatterns, text); ok {
			scores.Overall = value
		}
	}

	labelPatterns, ok := categoryPatterns[category]
	if !ok {
		labelPatterns = genericPatterns
	}
	for field, patterns := range labelPatterns {
		if matched[field] {
			continue
		}
		if value, ok := firstInRangeMatch(patterns, text); ok {
			setField(&scores, field, value)
		}
	}

	return scores.Clamp()
}

func firstInRangeMatch(patterns []*regexp.Regexp, text string) (float64, bool) {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil || !inRange(value) {
			// Out-of-range or unparseable captures count as no-match so the
			// running default survives.
			continue
		}
		return value, true
	}
	return 0, false
}

func setField(scores *ScoreSet, field scoreField, value float64) {
	switch field {
	case fieldOverall:
		scores.Overall = value
	case fieldStructure:
		scores.Structure = value
	case fieldQuantitative:
		scores.Quantitative = value
	case fieldCreativity:
		scores.Creativity = value
	case fieldCommunication:
		scores.Communication = value
	}
}

var headerPresencePatterns = compilePatterns(
	`Structure & Framework:?\s*\d`,
	`Approach/Structure:?\s*\d`,
	`overall_score\s*=\s*\d`,
)

// HasScoreHeader reports whether the text already carries a recognizable
// score summary of any historical shape.
func HasScoreHeader(text string) bool {
	for _, pattern := range headerPresencePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// EnsureScoreHeader prepends a category-labelled score summary when the text
// has none, so every stored feedback document opens with a consistent score
// block no matter what the model produced.
func EnsureScoreHeader(text, category string, scores ScoreSet) string {
	if HasScoreHeader(text) {
		return text
	}
	return renderScoreHeader(category, scores) + text
}

func renderScoreHeader(category string, scores ScoreSet) string {
	labels := headerLabels(category)
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s/10\n", labels[0], formatScore(scores.Structure))
	fmt.Fprintf(&b, "%s: %s/10\n", labels[1], formatScore(scores.Quantitative))
	fmt.Fprintf(&b, "%s: %s/10\n", labels[2], formatScore(scores.Creativity))
	fmt.Fprintf(&b, "%s: %s/10\n", labels[3], formatScore(scores.Communication))
	fmt.Fprintf(&b, "Overall Score: %s/10\n\n", formatScore(scores.Overall))
	return b.String()
}

func headerLabels(category string) [4]string {
	switch category {
	case CategoryCaseStudy:
		return [4]string{"Structure & Framework", "Quantitative Analysis", "Creativity & Insight", "Communication Clarity"}
	case CategoryGuesstimate:
		return [4]string{"Approach/Structure", "Assumptions Quality", "Math Accuracy", "Step-by-Step Thinking"}
	default:
		return [4]string{"Structure", "Quantitative", "Creativity", "Communication"}
	}
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
