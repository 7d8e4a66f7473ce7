package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/platform/jwt"
	"github.com/ayusharma-ctrl/Spyne/internal/port/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type UserUseCase struct {
	userRepo repository.UserRepository
	tokens   *jwt.TokenManager
	logger   *zap.Logger
}

func NewUserUseCase(ur repository.UserRepository, tm *jwt.TokenManager, log *zap.Logger) *UserUseCase {
	return &UserUseCase{
		userRepo: ur,
		tokens:   tm,
		logger:   log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user unless the username or the email is already
// taken. The stored password is a bcrypt hash, never recoverable.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (string, error) {
	exists, err := uc.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		uc.logger.Error("Failed to check user existence", zap.Error(err), zap.String("email", input.Email))
		return "", fmt.Errorf("UserUseCase.Register: failed to check user existence: %w", err)
	}
	if exists {
		return "", ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("UserUseCase.Register: failed to hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}

	userID, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		// The existence check and the insert are not atomic; a racing
		// registration can still trip the unique index.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserAlreadyExists
		}
		uc.logger.Error("Failed to create user in repository", zap.Error(err), zap.String("email", input.Email))
		return "", fmt.Errorf("UserUseCase.Register: failed to create user in repo: %w", err)
	}
	return userID, nil
}

type LoginOutput struct {
	UserID string
	Token  string
}

// Login authenticates by email and password and issues a session token.
// An unknown email and a wrong password return the same error so callers
// cannot tell which check failed.
func (uc *UserUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		uc.logger.Error("Failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("UserUseCase.Login: failed to get user from repo: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID, user.Email)
	if err != nil {
		uc.logger.Error("Failed to issue session token", zap.Error(err), zap.String("user_id", user.ID))
		return nil, fmt.Errorf("UserUseCase.Login: failed to issue token: %w", err)
	}

	return &LoginOutput{UserID: user.ID, Token: token}, nil
}
