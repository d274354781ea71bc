package models

import "time"

// Difficulty levels for problems.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// Problem is a case-interview exercise candidates submit answers to. The
// category string drives prompt and feedback-template selection when it is
// one of the recognized values ("Case Study", "Guesstimate").
type Problem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Difficulty    string    `gorm:"size:16;not null" json:"difficulty"`
	Category      string    `gorm:"size:64;not null" json:"category"`
	EstimatedTime int       `json:"estimated_time"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	AuthorID      uint      `json:"author_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProblemExample is a sample question/answer pair attached to a problem.
type ProblemExample struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProblemID     uint      `gorm:"not null;index" json:"problem_id"`
	ExampleText   string    `gorm:"type:text;not null" json:"example_text"`
	ExampleAnswer string    `gorm:"type:text;not null" json:"example_answer"`
	CreatedAt     time.Time `json:"created_at"`
}

// Framework is a reusable solution framework attached to a problem.
type Framework struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProblemID uint      `gorm:"not null;index" json:"problem_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
