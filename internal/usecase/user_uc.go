package usecase

import (
	"context"
	"errors"

	"telegram-cinehub-bot/internal/domain"
	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes user-related operations used by bot flows.
type UserUseCase interface {
	RegisterOrTouch(ctx context.Context, tgID int64, username string) (*model.User, error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, log: logger}
}

// RegisterOrTouch upserts the user seen in an inbound /start: new users are
// created, known users get their username refreshed and last-active bumped.
func (u *userUC) RegisterOrTouch(ctx context.Context, tgID int64, username string) (*model.User, error) {
	usr, err := u.users.FindByTelegramID(ctx, tgID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if usr == nil {
		usr, err = model.NewUser("", tgID, username)
		if err != nil {
			return nil, err
		}
	} else {
		if username != "" && usr.Username != username {
			usr.Username = username
		}
		usr.Touch()
	}

	if err := u.users.Save(ctx, usr); err != nil {
		u.log.Error().Err(err).Int64("tg_id", tgID).Msg("failed to save user")
		return nil, err
	}
	return usr, nil
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	return u.users.CountUsers(ctx)
}
