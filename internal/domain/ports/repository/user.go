package repository

import (
	"context"

	"telegram-cinehub-bot/internal/domain/model"
)

type UserRepository interface {
	// Save upserts by telegram id.
	Save(ctx context.Context, u *model.User) error
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	ListTelegramIDs(ctx context.Context) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)
}
