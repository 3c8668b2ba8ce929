package repository

import (
	"context"

	"telegram-cinehub-bot/internal/domain/model"
)

// CatalogRepository exposes the content catalog: contents, their parts
// (episodes) and per-user favorites. List methods return entries with at
// least ID and Title populated.
type CatalogRepository interface {
	FindContent(ctx context.Context, id int64) (*model.Content, error)
	CountContent(ctx context.Context) (int, error)
	ListLatest(ctx context.Context, limit, offset int) ([]model.Content, error)
	ListTop(ctx context.Context, limit, offset int) ([]model.Content, error)
	ListByType(ctx context.Context, t model.ContentType, limit, offset int) ([]model.Content, error)
	CountByType(ctx context.Context, t model.ContentType) (int, error)
	Search(ctx context.Context, query string, limit, offset int) ([]model.Content, error)
	CountSearch(ctx context.Context, query string) (int, error)

	ListSeasons(ctx context.Context, contentID int64) ([]int, error)
	ListParts(ctx context.Context, contentID int64, season int) ([]model.Part, error)
	FindPart(ctx context.Context, partID int64) (*model.Part, error)
	FindPartByNumber(ctx context.Context, contentID int64, season, number int) (*model.Part, error)

	IncrementViews(ctx context.Context, contentID int64) error

	IsFavorite(ctx context.Context, userID, contentID int64) (bool, error)
	// ToggleFavorite flips the favorite flag and reports the new value.
	ToggleFavorite(ctx context.Context, userID, contentID int64) (bool, error)
	CountFavorites(ctx context.Context, userID int64) (int, error)
	ListFavorites(ctx context.Context, userID int64, limit, offset int) ([]model.Content, error)

	Stats(ctx context.Context) (model.Stats, error)
}
