package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockScoreIsDeterministic(t *testing.T) {
	answer := strings.Repeat("We analyze the market and estimate revenue for the company. ", 10)
	first := MockScore("Market Entry Strategy", "A Case Study about retail.", answer)
	second := MockScore("Market Entry Strategy", "A Case Study about retail.", answer)

	require.Equal(t, first, second)
}

func TestMockScoreVeryShortAnswer(t *testing.T) {
	result := MockScore("Market Entry Strategy", "A Case Study about retail.", "Yes.")

	require.Equal(t, 1.5, result.Scores.Overall)
	require.Equal(t, 1.0, result.Scores.Structure)
	require.Equal(t, 1.0, result.Scores.Quantitative)
	require.Equal(t, 1.0, result.Scores.Creativity)
	require.Equal(t, 1.0, result.Scores.Communication)
	require.Contains(t, result.FeedbackText, "Relevance: No")
	require.Contains(t, result.FeedbackText, "Score: 1.5/10")
}

func TestMockScoreMidLengthRejection(t *testing.T) {
	// Keyword-rich but under the 100 char floor.
	answer := "market strategy business analysis approach calculate eight."
	require.GreaterOrEqual(t, len(answer), 50)
	require.Less(t, len(answer), 100)

	result := MockScore("Cost Reduction", "problem", answer)
	require.Equal(t, 2.5, result.Scores.Overall)
	require.Equal(t, 1.5, result.Scores.Structure)
	require.Equal(t, 2.0, result.Scores.Quantitative)
	require.Equal(t, 1.0, result.Scores.Creativity)
	require.Equal(t, 1.5, result.Scores.Communication)
}

func TestMockScoreKeywordPoorAnswerRejected(t *testing.T) {
	answer := strings.Repeat("I would simply do my best and hope for a good outcome here. ", 5)
	require.Greater(t, len(answer), 100)

	result := MockScore("Revenue Estimation", "problem", answer)
	require.Equal(t, 3.0, result.Scores.Overall)
	require.Equal(t, 2.0, result.Scores.Structure)
	require.Equal(t, 2.5, result.Scores.Quantitative)
	require.Equal(t, 1.5, result.Scores.Creativity)
	require.Equal(t, 2.0, result.Scores.Communication)
}

func TestMockScoreBoundaryLandsInAcceptance(t *testing.T) {
	// Exactly 100 characters with two general keywords present.
	answer := "The market is large and the strategy should focus on early adopters before scaling more widely ok!!!"
	require.Len(t, answer, 100)

	result := MockScore("Market Size", "problem", answer)
	require.Equal(t, 5.0, result.Scores.Overall)
	require.Contains(t, result.FeedbackText, "Relevance: Yes")
}

func TestMockScoreTopTier(t *testing.T) {
	answer := strings.Repeat(
		"Our analysis segments the target market and sizes the competitor landscape. "+
			"We estimate revenue and profit with a growth rate assumption, calculate cost per segment, "+
			"and lay out an implementation strategy with a clear market size model. ", 4)
	require.Greater(t, len(answer), 800)

	result := MockScore("Market Entry Strategy", "This is a Case Study problem.", answer)
	require.Equal(t, ScoreSet{Overall: 8.0, Structure: 7.5, Quantitative: 7.5, Creativity: 7.0, Communication: 7.5}, result.Scores)
	require.Contains(t, result.FeedbackText, "case study scenario")
}

func TestMockScoreMidTiers(t *testing.T) {
	// >500 chars with at least four analysis+quantitative keywords.
	mid := strings.Repeat("The analysis covers each segment and the competitor set, with revenue estimates included here. ", 6)
	require.Greater(t, len(mid), 500)
	result := MockScore("T", "problem", mid)
	require.Equal(t, 7.0, result.Scores.Overall)

	// >300 chars but keyword-poor beyond the general gate.
	long := strings.Repeat("We look at the market and the business with a simple approach that should hold up well. ", 4)
	require.Greater(t, len(long), 300)
	result = MockScore("T", "problem", long)
	require.Equal(t, 6.0, result.Scores.Overall)
}

func TestMockScoreGuesstimateWording(t *testing.T) {
	answer := strings.Repeat("We estimate the number of customers in the market using a clear approach. ", 5)
	result := MockScore("Coffee Shops", "Estimate how many coffee shops are in Delhi.", answer)

	require.Contains(t, result.FeedbackText, "guesstimate scenario")
}

func TestMockScoreCountsParagraphs(t *testing.T) {
	answer := "We segment the market carefully using a top-down approach here.\n\n" +
		"Then we estimate the revenue for the business case in question.\n\n" +
		"Finally we sanity-check the numbers against competitor analysis data."
	result := MockScore("T", "problem", answer)

	require.Contains(t, result.FeedbackText, "3 clearly defined sections")
}
