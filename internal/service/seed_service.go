package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/models"
	"github.com/mihirnarula/consultigo-api/internal/repository"
)

// SeedService provisions the default admin account and the starter problem
// catalog on boot. Both operations are idempotent.
type SeedService interface {
	Run(ctx context.Context) error
}

type seedService struct {
	users    repository.UserRepository
	problems repository.ProblemRepository
	logger   zerolog.Logger
}

// NewSeedService constructs the seed service.
func NewSeedService(users repository.UserRepository, problems repository.ProblemRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		users:    users,
		problems: problems,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) Run(ctx context.Context) error {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return err
	}

	return s.ensureProblems(ctx, admin.ID)
}

func (s *seedService) ensureAdmin(ctx context.Context) (models.User, error) {
	admin, err := s.users.GetByEmail(ctx, "admin@consultigo.local")
	if err == nil {
		return admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	admin = models.User{
		Username:     "admin",
		Email:        "admin@consultigo.local",
		PasswordHash: string(hash),
		FirstName:    "Default",
		LastName:     "Admin",
		Bio:          "Default admin user",
		IsActive:     true,
		IsAdmin:      true,
	}
	if err := s.users.Create(ctx, &admin); err != nil {
		return models.User{}, err
	}

	s.logger.Info().Uint("user_id", admin.ID).Msg("default admin created")

	return admin, nil
}

func (s *seedService) ensureProblems(ctx context.Context, authorID uint) error {
	existing, err := s.problems.List(ctx, repository.ProblemFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	starters := []models.Problem{
		{
			Title:         "Market Entry Strategy",
			Description:   "A luxury fashion brand is considering entering the Asian market. Develop a comprehensive market entry strategy considering cultural differences, competition, and distribution channels.",
			Difficulty:    models.DifficultyHard,
			Category:      "Case Study",
			EstimatedTime: 60,
		},
		{
			Title:         "Cost Reduction Analysis",
			Description:   "A manufacturing company is facing pressure to reduce costs by 20% while maintaining product quality. Analyze potential areas for cost reduction and recommend a strategy.",
			Difficulty:    models.DifficultyMedium,
			Category:      "Case Study",
			EstimatedTime: 45,
		},
		{
			Title:         "Market Size Estimation",
			Description:   "Estimate the market size for electric vehicles in the United States over the next 5 years. Consider factors such as adoption rates, government incentives, and infrastructure development.",
			Difficulty:    models.DifficultyMedium,
			Category:      "Guesstimate",
			EstimatedTime: 30,
		},
		{
			Title:         "Revenue Estimation",
			Description:   "Estimate the yearly revenue for a new premium coffee chain with 15 locations in major metropolitan areas. Consider factors like average ticket size, customer frequency, and market competition.",
			Difficulty:    models.DifficultyMedium,
			Category:      "Guesstimate",
			EstimatedTime: 30,
		},
		{
			Title:         "Cost Structure Analysis",
			Description:   "Analyze the cost structure for a subscription-based software company. Identify key cost drivers and suggest optimization strategies.",
			Difficulty:    models.DifficultyHard,
			Category:      "Guesstimate",
			EstimatedTime: 45,
		},
	}

	for i := range starters {
		starters[i].IsActive = true
		starters[i].AuthorID = authorID
		if err := s.problems.Create(ctx, &starters[i]); err != nil {
			return err
		}
	}

	s.logger.Info().Int("count", len(starters)).Msg("starter problems seeded")

	return nil
}
