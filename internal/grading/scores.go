package grading

// ScoreSet is the five-number evaluation result for a single submission.
// Quantitative maps to the clarity column and Communication to the
// confidence column of the ai_feedback table; the historical names differ
// per problem category but the storage shape is fixed.
type ScoreSet struct {
	Overall       float64 `json:"overall_score"`
	Structure     float64 `json:"structure_score"`
	Quantitative  float64 `json:"quantitative_score"`
	Creativity    float64 `json:"creativity_score"`
	Communication float64 `json:"communication_score"`
}

// DefaultScores returns the fallback scores used when extraction finds
// nothing usable. The overall default is deliberately higher than the
// sub-score defaults; changing the values breaks compatibility with
// previously stored feedback.
func DefaultScores() ScoreSet {
	return ScoreSet{
		Overall:       7.5,
		Structure:     4.0,
		Quantitative:  4.0,
		Creativity:    3.5,
		Communication: 4.0,
	}
}

// Clamp pins every field into the [0,10] range.
func (s ScoreSet) Clamp() ScoreSet {
	s.Overall = clampScore(s.Overall)
	s.Structure = clampScore(s.Structure)
	s.Quantitative = clampScore(s.Quantitative)
	s.Creativity = clampScore(s.Creativity)
	s.Communication = clampScore(s.Communication)
	return s
}

func clampScore(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 10 {
		return 10
	}
	return value
}

func inRange(value float64) bool {
	return value >= 0 && value <= 10
}
