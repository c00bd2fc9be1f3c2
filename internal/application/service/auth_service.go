package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/caixa-api/internal/domain/entity"
	"github.com/sangkips/caixa-api/internal/domain/enum"
	"github.com/sangkips/caixa-api/internal/domain/repository"
	"github.com/sangkips/caixa-api/pkg/apperror"
	"github.com/sangkips/caixa-api/pkg/utils"
)

// MinPasswordLength is the shortest password accepted for an operator account
const MinPasswordLength = 6

// AuthService handles operator accounts and sign-in
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates an operator and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Nome      string
	Matricula string
	Email     string
	Password  string
}

// Register creates a new operator account with the operador role
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	matricula := strings.TrimSpace(input.Matricula)

	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Nome) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "nome", Message: "is required"})
	}
	if matricula == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "matricula", Message: "is required"})
	}
	if len(input.Password) < MinPasswordLength {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	existing, err = s.userRepo.GetByMatricula(ctx, matricula)
	if err != nil {
		return nil, fmt.Errorf("find user by matricula: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Matricula already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Nome:      strings.TrimSpace(input.Nome),
		Matricula: matricula,
		Email:     email,
		Password:  hashedPassword,
		Role:      enum.RoleOperador,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("matricula", user.Matricula).Msg("operator registered")
	return user, nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// GetCurrentUser returns the signed-in operator
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the operator's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	if len(input.NewPassword) < MinPasswordLength {
		return apperror.NewValidationError([]apperror.FieldError{{
			Field:   "new_password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}})
	}

	user, err := s.GetCurrentUser(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Matricula, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
