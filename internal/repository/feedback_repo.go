package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// FeedbackRepository defines data operations for grading feedback. The
// grading flow holds two independent handles so a failed insert can be
// retried on a fresh session.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetBySubmissionID(ctx context.Context, submissionID uint) (models.Feedback, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates the repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) GetBySubmissionID(ctx context.Context, submissionID uint) (models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&feedback).Error; err != nil {
		return models.Feedback{}, err
	}

	return feedback, nil
}

func (r *feedbackRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Feedback, error) {
	if limit <= 0 {
		limit = 100
	}

	var feedbacks []models.Feedback
	err := r.db.WithContext(ctx).
		Joins("JOIN submissions ON submissions.id = feedbacks.submission_id").
		Where("submissions.user_id = ?", userID).
		Order("feedbacks.generated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}

	return feedbacks, nil
}
