package usecase

import (
	"booklib/internal/entity"
	"context"
)

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (entity.User, error)
	GetByID(ctx context.Context, id int64) (entity.User, error)
}
