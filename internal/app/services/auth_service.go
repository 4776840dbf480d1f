package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
	"github.com/teamthree/jobapply/internal/pkg/auth"
	"github.com/teamthree/jobapply/internal/pkg/logger"
	"github.com/teamthree/jobapply/internal/pkg/validation"
)

// IUserRepository abstracts user and session persistence for the service
// layer.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) (bool, error)
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// AuthResult carries the issued token and the authenticated user.
type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles registration, login and session bookkeeping.
type AuthService struct {
	userRepo   IUserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo IUserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{userRepo: userRepo, jwtService: jwtService}
}

// Register creates an account and logs the user straight in.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" || password == "" || firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if !validation.IsValidEmail(email) {
		return nil, apperrors.NewValidationError("Please enter a valid email address")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("Password must be at least 8 characters long")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		RoleType:  models.RoleUser,
	}

	// The unique index owns the duplicate check, so two concurrent
	// registrations cannot both win.
	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("Email already registered")
		}
		return nil, err
	}

	created, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("email", created.Email).Msg("User registered")
	return s.issueSession(ctx, created)
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}

	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "Account is disabled")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("user", user.ID).Msg("Failed to update last login")
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout removes the session for the presented token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	deleted, err := s.userRepo.DeleteSessionByToken(ctx, token)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrSessionNotFound
	}
	return nil
}

// GetProfile returns the current user.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// ValidateSession checks the token's session row exists and has not expired.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.userRepo.GetSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}
	return session, nil
}

// CleanupExpiredSessions removes expired session rows and returns the count
// removed. Run daily by the scheduler.
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	count, err := s.userRepo.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info().Int64("removed", count).Msg("Expired sessions cleaned up")
	}
	return count, nil
}
