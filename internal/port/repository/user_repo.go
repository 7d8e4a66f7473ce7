package repository

import (
	"context"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ExistsByUsernameOrEmail reports whether any user already holds either
	// the given username or the given email.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
