package services

import (
	"context"
	"net/http"
	"testing"

	"storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- Mocks for Dependencies ---

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}
func (m *MockSessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}
func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
func (m *MockSessionRepository) UpdateCart(ctx context.Context, sessionID string, mutate func(cart map[uint]int) error) (*models.Session, error) {
	args := m.Called(ctx, sessionID, mutate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// --- Tests ---

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, nil)

		mockRepo.On("FindByUsername", ctx, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
			user := args.Get(1).(*models.User)
			assert.Equal(t, "alice", user.Username)
			assert.Equal(t, models.RoleCustomer, user.Role)
			// stored digest must verify against the original password
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		}).Return(nil).Once()

		appErr := authService.Register(ctx, "alice", "secret123", "secret123")

		assert.Nil(t, appErr)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateUsernameCreatesNoRow", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, nil)

		existing := &models.User{ID: 1, Username: "alice"}
		mockRepo.On("FindByUsername", ctx, "alice").Return(existing, nil).Once()

		appErr := authService.Register(ctx, "alice", "secret123", "secret123")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusConflict, appErr.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, nil)

		appErr := authService.Register(ctx, "alice", "secret123", "different")

		assert.NotNil(t, appErr)
		assert.Equal(t, "Passwords do not match.", appErr.Message)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingFields", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, nil)

		appErr := authService.Register(ctx, "", "secret123", "secret123")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	password := "strongpassword123"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	testUser := &models.User{
		ID:       7,
		Username: "bob",
		Password: string(hashed),
		Role:     models.RoleCustomer,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSessions := new(MockSessionRepository)
		authService := NewAuthService(mockRepo, mockSessions)

		mockRepo.On("FindByUsername", ctx, "bob").Return(testUser, nil).Once()
		mockSessions.On("Create", ctx, mock.AnythingOfType("*models.Session")).Run(func(args mock.Arguments) {
			session := args.Get(1).(*models.Session)
			assert.Equal(t, uint(7), session.UserID)
			assert.Equal(t, "bob", session.Username)
			assert.Equal(t, models.RoleCustomer, session.Role)
			assert.Empty(t, session.Cart)
		}).Return("sid-123", nil).Once()

		sessionID, session, appErr := authService.Login(ctx, "bob", password)

		assert.Nil(t, appErr)
		assert.Equal(t, "sid-123", sessionID)
		assert.NotNil(t, session)
		mockSessions.AssertExpectations(t)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, nil)

		mockRepo.On("FindByUsername", ctx, "bob").Return(testUser, nil).Once()

		_, _, appErr := authService.Login(ctx, "bob", "not-the-password")

		assert.NotNil(t, appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	})

	t.Run("UnknownUserSameMessageAsWrongPassword", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService := NewAuthService(mockRepo, nil)

		mockRepo.On("FindByUsername", ctx, "nobody").Return(nil, gorm.ErrRecordNotFound).Once()
		mockRepo.On("FindByUsername", ctx, "bob").Return(testUser, nil).Once()

		_, _, unknownErr := authService.Login(ctx, "nobody", password)
		_, _, wrongErr := authService.Login(ctx, "bob", "not-the-password")

		assert.NotNil(t, unknownErr)
		assert.NotNil(t, wrongErr)
		assert.Equal(t, wrongErr.Message, unknownErr.Message)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("DeletesSession", func(t *testing.T) {
		mockSessions := new(MockSessionRepository)
		authService := NewAuthService(nil, mockSessions)

		mockSessions.On("Delete", ctx, "sid-123").Return(nil).Once()

		appErr := authService.Logout(ctx, "sid-123")

		assert.Nil(t, appErr)
		mockSessions.AssertExpectations(t)
	})

	t.Run("NoSessionIsFine", func(t *testing.T) {
		mockSessions := new(MockSessionRepository)
		authService := NewAuthService(nil, mockSessions)

		appErr := authService.Logout(ctx, "")

		assert.Nil(t, appErr)
		mockSessions.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
