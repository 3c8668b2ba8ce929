package usecase

import (
	"context"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/repository"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ StatsUseCase = (*statsUC)(nil)

type StatsUseCase interface {
	Totals(ctx context.Context) (model.Stats, error)
}

type statsUC struct {
	catalog repository.CatalogRepository
	users   repository.UserRepository
	log     *zerolog.Logger
}

func NewStatsUseCase(catalog repository.CatalogRepository, users repository.UserRepository, logger *zerolog.Logger) *statsUC {
	return &statsUC{catalog: catalog, users: users, log: logger}
}

func (s *statsUC) Totals(ctx context.Context) (model.Stats, error) {
	st, err := s.catalog.Stats(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	st.Users = users
	return st, nil
}
