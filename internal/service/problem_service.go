package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/models"
	"github.com/mihirnarula/consultigo-api/internal/repository"
)

// ErrProblemNotFound indicates the problem was not located.
var ErrProblemNotFound = errors.New("problem not found")

// ErrFrameworkNotFound indicates the framework was not located.
var ErrFrameworkNotFound = errors.New("framework not found")

// ProblemService encapsulates the problem catalog and its nested examples and
// frameworks.
type ProblemService interface {
	List(ctx context.Context, filter dto.ProblemFilter) ([]dto.ProblemResponse, error)
	Get(ctx context.Context, id uint) (dto.ProblemResponse, error)
	Create(ctx context.Context, authorID uint, payload dto.ProblemCreateRequest) (dto.ProblemResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProblemUpdateRequest) (dto.ProblemResponse, error)
	Delete(ctx context.Context, id uint) error

	AddExample(ctx context.Context, problemID uint, payload dto.ExampleCreateRequest) (dto.ExampleResponse, error)
	ListExamples(ctx context.Context, problemID uint) ([]dto.ExampleResponse, error)

	AddFramework(ctx context.Context, problemID uint, payload dto.FrameworkCreateRequest) (dto.FrameworkResponse, error)
	ListFrameworks(ctx context.Context, problemID uint) ([]dto.FrameworkResponse, error)
	GetFramework(ctx context.Context, id uint) (dto.FrameworkResponse, error)
}

type problemService struct {
	repo      repository.ProblemRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProblemService constructs the problem service. The cache client is
// optional; a nil client disables list caching.
func NewProblemService(repo repository.ProblemRepository, cache *redis.Client, cacheTTL time.Duration, sanitizer *bluemonday.Policy, validator *validator.Validate, logger zerolog.Logger) ProblemService {
	return &problemService{
		repo:      repo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		sanitizer: sanitizer,
		validator: validator,
		logger:    logger.With().Str("component", "problem_service").Logger(),
	}
}

func (s *problemService) List(ctx context.Context, filter dto.ProblemFilter) ([]dto.ProblemResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	cacheKey := s.listCacheKey(filter)
	if cached, ok := s.readCache(ctx, cacheKey); ok {
		return cached, nil
	}

	problems, err := s.repo.List(ctx, repository.ProblemFilter{
		Category:   filter.Category,
		Difficulty: filter.Difficulty,
		Offset:     filter.Offset,
		Limit:      filter.Limit,
	})
	if err != nil {
		return nil, err
	}

	responses := dto.NewProblemResponseSlice(problems)
	s.writeCache(ctx, cacheKey, responses)

	return responses, nil
}

func (s *problemService) Get(ctx context.Context, id uint) (dto.ProblemResponse, error) {
	problem, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProblemResponse{}, ErrProblemNotFound
		}
		return dto.ProblemResponse{}, err
	}

	return dto.NewProblemResponse(problem), nil
}

func (s *problemService) Create(ctx context.Context, authorID uint, payload dto.ProblemCreateRequest) (dto.ProblemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProblemResponse{}, err
	}

	problem := models.Problem{
		Title:         s.sanitize(payload.Title),
		Description:   s.sanitize(payload.Description),
		Difficulty:    payload.Difficulty,
		Category:      payload.Category,
		EstimatedTime: payload.EstimatedTime,
		IsActive:      true,
		AuthorID:      authorID,
	}

	if err := s.repo.Create(ctx, &problem); err != nil {
		return dto.ProblemResponse{}, err
	}

	s.invalidateListCache(ctx)
	s.logger.Info().Uint("problem_id", problem.ID).Str("category", problem.Category).Msg("problem created")

	return dto.NewProblemResponse(problem), nil
}

func (s *problemService) Update(ctx context.Context, id uint, payload dto.ProblemUpdateRequest) (dto.ProblemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProblemResponse{}, err
	}

	problem, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProblemResponse{}, ErrProblemNotFound
		}
		return dto.ProblemResponse{}, err
	}

	if payload.Title != nil {
		problem.Title = s.sanitize(*payload.Title)
	}
	if payload.Description != nil {
		problem.Description = s.sanitize(*payload.Description)
	}
	if payload.Difficulty != nil {
		problem.Difficulty = *payload.Difficulty
	}
	if payload.Category != nil {
		problem.Category = *payload.Category
	}
	if payload.EstimatedTime != nil {
		problem.EstimatedTime = *payload.EstimatedTime
	}
	if payload.IsActive != nil {
		problem.IsActive = *payload.IsActive
	}

	if err := s.repo.Update(ctx, &problem); err != nil {
		return dto.ProblemResponse{}, err
	}

	s.invalidateListCache(ctx)

	return dto.NewProblemResponse(problem), nil
}

func (s *problemService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProblemNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListCache(ctx)

	return nil
}

func (s *problemService) AddExample(ctx context.Context, problemID uint, payload dto.ExampleCreateRequest) (dto.ExampleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExampleResponse{}, err
	}

	if _, err := s.repo.GetByID(ctx, problemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExampleResponse{}, ErrProblemNotFound
		}
		return dto.ExampleResponse{}, err
	}

	example := models.ProblemExample{
		ProblemID:     problemID,
		ExampleText:   s.sanitize(payload.ExampleText),
		ExampleAnswer: s.sanitize(payload.ExampleAnswer),
	}

	if err := s.repo.CreateExample(ctx, &example); err != nil {
		return dto.ExampleResponse{}, err
	}

	return dto.NewExampleResponse(example), nil
}

func (s *problemService) ListExamples(ctx context.Context, problemID uint) ([]dto.ExampleResponse, error) {
	if _, err := s.repo.GetByID(ctx, problemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, err
	}

	examples, err := s.repo.ListExamples(ctx, problemID)
	if err != nil {
		return nil, err
	}

	return dto.NewExampleResponseSlice(examples), nil
}

func (s *problemService) AddFramework(ctx context.Context, problemID uint, payload dto.FrameworkCreateRequest) (dto.FrameworkResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FrameworkResponse{}, err
	}

	if _, err := s.repo.GetByID(ctx, problemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FrameworkResponse{}, ErrProblemNotFound
		}
		return dto.FrameworkResponse{}, err
	}

	framework := models.Framework{
		ProblemID: problemID,
		Title:     s.sanitize(payload.Title),
		Content:   s.sanitize(payload.Content),
	}

	if err := s.repo.CreateFramework(ctx, &framework); err != nil {
		return dto.FrameworkResponse{}, err
	}

	return dto.NewFrameworkResponse(framework), nil
}

func (s *problemService) ListFrameworks(ctx context.Context, problemID uint) ([]dto.FrameworkResponse, error) {
	if _, err := s.repo.GetByID(ctx, problemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, err
	}

	frameworks, err := s.repo.ListFrameworks(ctx, problemID)
	if err != nil {
		return nil, err
	}

	return dto.NewFrameworkResponseSlice(frameworks), nil
}

func (s *problemService) GetFramework(ctx context.Context, id uint) (dto.FrameworkResponse, error) {
	framework, err := s.repo.GetFramework(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FrameworkResponse{}, ErrFrameworkNotFound
		}
		return dto.FrameworkResponse{}, err
	}

	return dto.NewFrameworkResponse(framework), nil
}

func (s *problemService) sanitize(value string) string {
	if s.sanitizer == nil {
		return value
	}

	return s.sanitizer.Sanitize(value)
}

const problemCachePrefix = "problems:list:"

func (s *problemService) listCacheKey(filter dto.ProblemFilter) string {
	category := ""
	if filter.Category != nil {
		category = *filter.Category
	}
	difficulty := ""
	if filter.Difficulty != nil {
		difficulty = *filter.Difficulty
	}

	return fmt.Sprintf("%s%s:%s:%d:%d", problemCachePrefix, category, difficulty, filter.Offset, filter.Limit)
}

func (s *problemService) readCache(ctx context.Context, key string) ([]dto.ProblemResponse, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("key", key).Msg("problem cache read failed")
		}
		return nil, false
	}

	var responses []dto.ProblemResponse
	if err := json.Unmarshal([]byte(raw), &responses); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("problem cache entry corrupt")
		return nil, false
	}

	return responses, true
}

func (s *problemService) writeCache(ctx context.Context, key string, responses []dto.ProblemResponse) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("problem cache write failed")
	}
}

func (s *problemService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}

	iter := s.cache.Scan(ctx, 0, problemCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Str("key", iter.Val()).Msg("problem cache invalidation failed")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("problem cache scan failed")
	}
}
