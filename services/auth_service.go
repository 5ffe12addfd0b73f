package services

import (
	"context"
	"errors"

	apperrors "storefront/errors"
	"storefront/models"
	"storefront/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and session lifecycle.
type AuthService struct {
	userRepo repository.UserRepository
	sessions repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessions repository.SessionRepository) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions}
}

// Register creates a customer account. The role is never taken from the
// caller: every registration is a customer.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword string) *apperrors.Error {
	if username == "" || password == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "Username and password are required.")
	}
	if password != confirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return apperrors.ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return nil
}

// Login verifies the credentials and opens a session. Unknown usernames
// and wrong passwords produce the same response.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Session, *apperrors.Error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	session := &models.Session{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Cart:     map[uint]int{},
	}
	sessionID, err := s.sessions.Create(ctx, session)
	if err != nil {
		return "", nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return sessionID, session, nil
}

// Logout destroys the session. Unknown session IDs are fine: the
// outcome is the same either way.
func (s *AuthService) Logout(ctx context.Context, sessionID string) *apperrors.Error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
