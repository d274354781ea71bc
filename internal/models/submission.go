package models

import "time"

// Processing status lifecycle of a submission. Completed and failed are
// terminal; the grading flow sets exactly one of them per attempt.
const (
	ProcessingStatusPending    = "pending"
	ProcessingStatusProcessing = "processing"
	ProcessingStatusCompleted  = "completed"
	ProcessingStatusFailed     = "failed"
)

// Submission is one candidate answer to a problem. Resubmission always
// creates a new row; rows are never reused across grading attempts.
type Submission struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	ProblemID         uint      `gorm:"not null;index" json:"problem_id"`
	AnswerText        string    `gorm:"type:text;not null" json:"answer_text"`
	AudioRecordingURL string    `gorm:"size:512" json:"audio_recording_url"`
	ProcessingStatus  string    `gorm:"size:16;not null;default:pending" json:"processing_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	User              User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Problem           Problem   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsTerminal reports whether the submission reached a final processing state.
func (s Submission) IsTerminal() bool {
	return s.ProcessingStatus == ProcessingStatusCompleted || s.ProcessingStatus == ProcessingStatusFailed
}
