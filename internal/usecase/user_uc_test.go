package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/platform/jwt"
	"github.com/ayusharma-ctrl/Spyne/internal/port/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTokenManager() *jwt.TokenManager {
	return jwt.NewTokenManager("test-secret", 15*24*time.Hour)
}

func TestUserUseCase_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewUserUseCase(userRepo, newTokenManager(), zap.NewNop())

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@example.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *entity.User) bool {
		// The stored password must be a verifiable hash, never the plaintext.
		return user.Password != "hunter22" &&
			bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")) == nil
	})).Return("user-1", nil)

	userID, err := uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userRepo.AssertExpectations(t)
}

func TestUserUseCase_Register_DuplicateRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewUserUseCase(userRepo, newTokenManager(), zap.NewNop())

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "other@example.com").Return(true, nil)

	_, err := uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUseCase_Register_RacingDuplicateRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewUserUseCase(userRepo, newTokenManager(), zap.NewNop())

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return("", repository.ErrDuplicate)

	_, err := uc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestUserUseCase_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokens := newTokenManager()
	uc := NewUserUseCase(userRepo, tokens, zap.NewNop())

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcryptCost)
	assert.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&entity.User{
		ID:       "user-1",
		Email:    "alice@example.com",
		Password: string(hashed),
	}, nil)

	out, err := uc.Login(context.Background(), "alice@example.com", "hunter22")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", out.UserID)

	claims, err := tokens.Verify(out.Token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestUserUseCase_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewUserUseCase(userRepo, newTokenManager(), zap.NewNop())

	hashed, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcryptCost)
	assert.NoError(t, err)

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, repository.ErrNotFound)
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").Return(&entity.User{
		ID:       "user-1",
		Email:    "alice@example.com",
		Password: string(hashed),
	}, nil)

	_, unknownEmailErr := uc.Login(context.Background(), "ghost@example.com", "whatever")
	_, wrongPasswordErr := uc.Login(context.Background(), "alice@example.com", "wrong-password")

	assert.ErrorIs(t, unknownEmailErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPasswordErr, ErrInvalidCredentials)
	assert.Equal(t, unknownEmailErr, wrongPasswordErr)
}
