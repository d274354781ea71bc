package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// SubmissionRepository defines data operations for submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	Update(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Submission, error)
	ListByProblem(ctx context.Context, problemID uint, offset, limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Submission, error) {
	return r.list(ctx, "user_id = ?", userID, offset, limit)
}

func (r *submissionRepository) ListByProblem(ctx context.Context, problemID uint, offset, limit int) ([]models.Submission, error) {
	return r.list(ctx, "problem_id = ?", problemID, offset, limit)
}

func (r *submissionRepository) list(ctx context.Context, cond string, arg any, offset, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 100
	}

	var submissions []models.Submission
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}
