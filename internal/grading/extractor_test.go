package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractScoresStructuredFormat(t *testing.T) {
	text := `overall_score = 9
structure_score = 8
quantitative_score = 7.5
creativity_score = 6
communication_score = 8.5

Relevance: Yes - strong answer.`

	scores := ExtractScores(text, CategoryCaseStudy)
	require.Equal(t, 9.0, scores.Overall)
	require.Equal(t, 8.0, scores.Structure)
	require.Equal(t, 7.5, scores.Quantitative)
	require.Equal(t, 6.0, scores.Creativity)
	require.Equal(t, 8.5, scores.Communication)
}

func TestExtractScoresStructuredBeatsLabels(t *testing.T) {
	text := `structure_score = 9
Structure & Framework: 2/10`

	scores := ExtractScores(text, CategoryCaseStudy)
	require.Equal(t, 9.0, scores.Structure)
}

func TestExtractScoresDefaultsOnProse(t *testing.T) {
	text := "The candidate shows promise but the answer lacks depth in several dimensions."

	scores := ExtractScores(text, CategoryCaseStudy)
	require.Equal(t, DefaultScores(), scores)
}

func TestExtractScoresCaseStudyLabels(t *testing.T) {
	text := `Structure & Framework: 8/10
Quantitative Analysis: 7/10
Creativity & Insight: 6.5/10
Communication Clarity: 9/10
Overall Score: 8/10`

	scores := ExtractScores(text, CategoryCaseStudy)
	require.Equal(t, 8.0, scores.Structure)
	require.Equal(t, 7.0, scores.Quantitative)
	require.Equal(t, 6.5, scores.Creativity)
	require.Equal(t, 9.0, scores.Communication)
	require.Equal(t, 8.0, scores.Overall)
}

func TestExtractScoresGuesstimateLabels(t *testing.T) {
	text := `Approach/Structure: 7/10
Assumptions Quality: 6/10
Math Accuracy: 8/10
Step-by-Step Thinking: 7.5/10
Score: 7/10`

	scores := ExtractScores(text, CategoryGuesstimate)
	require.Equal(t, 7.0, scores.Structure)
	require.Equal(t, 6.0, scores.Quantitative)
	require.Equal(t, 8.0, scores.Creativity)
	require.Equal(t, 7.5, scores.Communication)
	require.Equal(t, 7.0, scores.Overall)
}

func TestExtractScoresLabelFallbackOrder(t *testing.T) {
	// No "Structure & Framework" label, the shorter variants still match.
	scores := ExtractScores("Framework: 6/10", CategoryCaseStudy)
	require.Equal(t, 6.0, scores.Structure)
}

func TestExtractScoresOutOfRangeKeepsDefault(t *testing.T) {
	scores := ExtractScores("structure_score = 11", CategoryCaseStudy)
	require.Equal(t, 4.0, scores.Structure)
}

func TestExtractScoresOutOfRangeLabelSkipsToNextPattern(t *testing.T) {
	text := `Structure & Framework: 42/10
Structure: 6/10`

	scores := ExtractScores(text, CategoryCaseStudy)
	require.Equal(t, 6.0, scores.Structure)
}

func TestExtractScoresGenericCategory(t *testing.T) {
	text := `Structure: 5/10
Communication: 6/10`

	scores := ExtractScores(text, "Brainteaser")
	require.Equal(t, 5.0, scores.Structure)
	require.Equal(t, 6.0, scores.Communication)
	require.Equal(t, 4.0, scores.Quantitative)
}

func TestExtractScoresAllInRange(t *testing.T) {
	texts := []string{
		"",
		"overall_score = 10\nstructure_score = 0",
		"Score: 3.3/10 and some prose",
		"Structure & Framework: 9.9/10",
	}
	for _, text := range texts {
		scores := ExtractScores(text, CategoryCaseStudy)
		for _, value := range []float64{scores.Overall, scores.Structure, scores.Quantitative, scores.Creativity, scores.Communication} {
			require.GreaterOrEqual(t, value, 0.0)
			require.LessOrEqual(t, value, 10.0)
		}
	}
}

func TestEnsureScoreHeaderPrependsWhenMissing(t *testing.T) {
	body := "The answer demonstrates a reasonable grasp of the market."
	result := EnsureScoreHeader(body, CategoryCaseStudy, DefaultScores())

	require.True(t, strings.HasPrefix(result, "Structure & Framework: 4/10\n"))
	require.Contains(t, result, "Overall Score: 7.5/10")
	require.True(t, strings.HasSuffix(result, body))
}

func TestEnsureScoreHeaderKeepsExistingHeader(t *testing.T) {
	body := "Structure & Framework: 8/10\nGood work."
	require.Equal(t, body, EnsureScoreHeader(body, CategoryCaseStudy, DefaultScores()))
}

func TestEnsureScoreHeaderKeepsStructuredBlock(t *testing.T) {
	body := "overall_score = 9\nGreat answer."
	require.Equal(t, body, EnsureScoreHeader(body, CategoryGuesstimate, DefaultScores()))
}

func TestEnsureScoreHeaderGuesstimateLabels(t *testing.T) {
	result := EnsureScoreHeader("prose only", CategoryGuesstimate, ScoreSet{Overall: 7, Structure: 6, Quantitative: 5, Creativity: 4, Communication: 3})
	require.True(t, strings.HasPrefix(result, "Approach/Structure: 6/10\n"))
	require.Contains(t, result, "Step-by-Step Thinking: 3/10")
}

func TestEnsureScoreHeaderGenericLabels(t *testing.T) {
	result := EnsureScoreHeader("prose only", "Brainteaser", DefaultScores())
	require.True(t, strings.HasPrefix(result, "Structure: 4/10\n"))
	require.Contains(t, result, "Communication: 4/10")
}
