package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// ProblemFilter narrows problem list queries.
type ProblemFilter struct {
	Category   *string
	Difficulty *string
	Offset     int
	Limit      int
}

// ProblemRepository defines data operations for problems and their nested
// examples and frameworks.
type ProblemRepository interface {
	List(ctx context.Context, filter ProblemFilter) ([]models.Problem, error)
	GetByID(ctx context.Context, id uint) (models.Problem, error)
	Create(ctx context.Context, problem *models.Problem) error
	Update(ctx context.Context, problem *models.Problem) error
	Delete(ctx context.Context, id uint) error

	CreateExample(ctx context.Context, example *models.ProblemExample) error
	ListExamples(ctx context.Context, problemID uint) ([]models.ProblemExample, error)

	CreateFramework(ctx context.Context, framework *models.Framework) error
	ListFrameworks(ctx context.Context, problemID uint) ([]models.Framework, error)
	GetFramework(ctx context.Context, id uint) (models.Framework, error)
}

type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository instantiates the repository.
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) List(ctx context.Context, filter ProblemFilter) ([]models.Problem, error) {
	query := r.db.WithContext(ctx).Model(&models.Problem{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Difficulty != nil {
		query = query.Where("difficulty = ?", *filter.Difficulty)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var problems []models.Problem
	if err := query.Limit(limit).Order("id").Find(&problems).Error; err != nil {
		return nil, err
	}

	return problems, nil
}

func (r *problemRepository) GetByID(ctx context.Context, id uint) (models.Problem, error) {
	var problem models.Problem
	if err := r.db.WithContext(ctx).First(&problem, id).Error; err != nil {
		return models.Problem{}, err
	}

	return problem, nil
}

func (r *problemRepository) Create(ctx context.Context, problem *models.Problem) error {
	return r.db.WithContext(ctx).Create(problem).Error
}

func (r *problemRepository) Update(ctx context.Context, problem *models.Problem) error {
	return r.db.WithContext(ctx).Save(problem).Error
}

func (r *problemRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Problem{}, id).Error
}

func (r *problemRepository) CreateExample(ctx context.Context, example *models.ProblemExample) error {
	return r.db.WithContext(ctx).Create(example).Error
}

func (r *problemRepository) ListExamples(ctx context.Context, problemID uint) ([]models.ProblemExample, error) {
	var examples []models.ProblemExample
	if err := r.db.WithContext(ctx).Where("problem_id = ?", problemID).Order("id").Find(&examples).Error; err != nil {
		return nil, err
	}

	return examples, nil
}

func (r *problemRepository) CreateFramework(ctx context.Context, framework *models.Framework) error {
	return r.db.WithContext(ctx).Create(framework).Error
}

func (r *problemRepository) ListFrameworks(ctx context.Context, problemID uint) ([]models.Framework, error) {
	var frameworks []models.Framework
	if err := r.db.WithContext(ctx).Where("problem_id = ?", problemID).Order("id").Find(&frameworks).Error; err != nil {
		return nil, err
	}

	return frameworks, nil
}

func (r *problemRepository) GetFramework(ctx context.Context, id uint) (models.Framework, error) {
	var framework models.Framework
	if err := r.db.WithContext(ctx).First(&framework, id).Error; err != nil {
		return models.Framework{}, err
	}

	return framework, nil
}
