package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mihirnarula/consultigo-api/internal/dto"
	"github.com/mihirnarula/consultigo-api/internal/repository"
)

// ErrInvalidCredentials indicates the username/password pair did not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInactiveUser indicates the account exists but is disabled.
var ErrInactiveUser = errors.New("user account is inactive")

// AuthService issues bearer tokens for registered users.
type AuthService interface {
	IssueToken(ctx context.Context, payload dto.TokenRequest) (dto.TokenResponse, error)
}

type authService struct {
	users     repository.UserRepository
	validator *validator.Validate
	secret    []byte
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the authentication service.
func NewAuthService(users repository.UserRepository, validator *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		validator: validator,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) IssueToken(ctx context.Context, payload dto.TokenRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, payload.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, err
		}
		// The login form accepts an email address in the username field.
		user, err = s.users.GetByEmail(ctx, payload.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.TokenResponse{}, ErrInvalidCredentials
			}
			return dto.TokenResponse{}, err
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return dto.TokenResponse{}, ErrInactiveUser
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL)

	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(user.ID), 10),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	lastLogin := issuedAt
	user.LastLogin = &lastLogin
	if err := s.users.Update(ctx, &user); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	return dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
