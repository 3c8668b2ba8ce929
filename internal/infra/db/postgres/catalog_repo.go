package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo serves the content catalog from Postgres. Absent rows come
// back as (nil, nil): the handlers treat "not found" as a user-visible
// outcome, not an error.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

const contentColumns = `
id, title, type, year, country, language, genres, description,
poster_file_id, parts_total, views, created_at`

func scanContent(row pgx.Row) (*model.Content, error) {
	var c model.Content
	err := row.Scan(
		&c.ID, &c.Title, &c.Type, &c.Year, &c.Country, &c.Language,
		&c.Genres, &c.Description, &c.PosterFileID, &c.PartsTotal,
		&c.Views, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func collectContents(rows pgx.Rows) ([]model.Content, error) {
	defer rows.Close()
	var out []model.Content
	for rows.Next() {
		var c model.Content
		err := rows.Scan(
			&c.ID, &c.Title, &c.Type, &c.Year, &c.Country, &c.Language,
			&c.Genres, &c.Description, &c.PosterFileID, &c.PartsTotal,
			&c.Views, &c.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CatalogRepo) FindContent(ctx context.Context, id int64) (*model.Content, error) {
	q := `SELECT ` + contentColumns + ` FROM contents WHERE id=$1;`
	return scanContent(r.pool.QueryRow(ctx, q, id))
}

func (r *CatalogRepo) CountContent(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contents;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count contents: %w", err)
	}
	return n, nil
}

func (r *CatalogRepo) ListLatest(ctx context.Context, limit, offset int) ([]model.Content, error) {
	q := `SELECT ` + contentColumns + ` FROM contents ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list latest: %w", err)
	}
	return collectContents(rows)
}

func (r *CatalogRepo) ListTop(ctx context.Context, limit, offset int) ([]model.Content, error) {
	q := `SELECT ` + contentColumns + ` FROM contents ORDER BY views DESC, id DESC LIMIT $1 OFFSET $2;`
	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list top: %w", err)
	}
	return collectContents(rows)
}

func (r *CatalogRepo) ListByType(ctx context.Context, t model.ContentType, limit, offset int) ([]model.Content, error) {
	q := `SELECT ` + contentColumns + ` FROM contents WHERE type=$1 ORDER BY title LIMIT $2 OFFSET $3;`
	rows, err := r.pool.Query(ctx, q, string(t), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by type: %w", err)
	}
	return collectContents(rows)
}

func (r *CatalogRepo) CountByType(ctx context.Context, t model.ContentType) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contents WHERE type=$1;`, string(t)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count by type: %w", err)
	}
	return n, nil
}

// Search matches by title substring, or by exact id when the query is a
// number (users share short numeric codes for entries).
func (r *CatalogRepo) Search(ctx context.Context, query string, limit, offset int) ([]model.Content, error) {
	q := `
SELECT ` + contentColumns + `
  FROM contents
 WHERE title ILIKE '%' || $1 || '%'
    OR ($1 ~ '^[0-9]+$' AND id = $1::bigint)
 ORDER BY views DESC, id DESC
 LIMIT $2 OFFSET $3;`
	rows, err := r.pool.Query(ctx, q, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return collectContents(rows)
}

func (r *CatalogRepo) CountSearch(ctx context.Context, query string) (int, error) {
	q := `
SELECT COUNT(*)
  FROM contents
 WHERE title ILIKE '%' || $1 || '%'
    OR ($1 ~ '^[0-9]+$' AND id = $1::bigint);`
	var n int
	if err := r.pool.QueryRow(ctx, q, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count search: %w", err)
	}
	return n, nil
}

func (r *CatalogRepo) ListSeasons(ctx context.Context, contentID int64) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT season FROM parts WHERE content_id=$1 ORDER BY season;`, contentID)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

func (r *CatalogRepo) ListParts(ctx context.Context, contentID int64, season int) ([]model.Part, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, content_id, season, number, channel_message_id
  FROM parts WHERE content_id=$1 AND season=$2 ORDER BY number;`, contentID, season)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var parts []model.Part
	for rows.Next() {
		var p model.Part
		if err := rows.Scan(&p.ID, &p.ContentID, &p.Season, &p.Number, &p.ChannelMessageID); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}

func (r *CatalogRepo) FindPart(ctx context.Context, partID int64) (*model.Part, error) {
	var p model.Part
	err := r.pool.QueryRow(ctx, `
SELECT id, content_id, season, number, channel_message_id
  FROM parts WHERE id=$1;`, partID).
		Scan(&p.ID, &p.ContentID, &p.Season, &p.Number, &p.ChannelMessageID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) FindPartByNumber(ctx context.Context, contentID int64, season, number int) (*model.Part, error) {
	var p model.Part
	err := r.pool.QueryRow(ctx, `
SELECT id, content_id, season, number, channel_message_id
  FROM parts WHERE content_id=$1 AND season=$2 AND number=$3;`, contentID, season, number).
		Scan(&p.ID, &p.ContentID, &p.Season, &p.Number, &p.ChannelMessageID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *CatalogRepo) IncrementViews(ctx context.Context, contentID int64) error {
	if _, err := r.pool.Exec(ctx, `UPDATE contents SET views = views + 1 WHERE id=$1;`, contentID); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

func (r *CatalogRepo) IsFavorite(ctx context.Context, userID, contentID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_tg_id=$1 AND content_id=$2);`,
		userID, contentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("is favorite: %w", err)
	}
	return exists, nil
}

// ToggleFavorite inserts the favorite row; a unique violation means it was
// already there, so the toggle removes it instead.
func (r *CatalogRepo) ToggleFavorite(ctx context.Context, userID, contentID int64) (bool, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO favorites (user_tg_id, content_id) VALUES ($1,$2);`, userID, contentID)
	if err == nil {
		return true, nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if _, err := r.pool.Exec(ctx,
			`DELETE FROM favorites WHERE user_tg_id=$1 AND content_id=$2;`, userID, contentID); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		return false, nil
	}
	return false, fmt.Errorf("add favorite: %w", err)
}

func (r *CatalogRepo) CountFavorites(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_tg_id=$1;`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return n, nil
}

func (r *CatalogRepo) ListFavorites(ctx context.Context, userID int64, limit, offset int) ([]model.Content, error) {
	q := `
SELECT ` + prefixedContentColumns("c") + `
  FROM favorites f
  JOIN contents c ON c.id = f.content_id
 WHERE f.user_tg_id=$1
 ORDER BY f.added_at DESC
 LIMIT $2 OFFSET $3;`
	rows, err := r.pool.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return collectContents(rows)
}

func (r *CatalogRepo) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	err := r.pool.QueryRow(ctx, `
SELECT
  (SELECT COUNT(*) FROM contents),
  (SELECT COUNT(*) FROM parts),
  (SELECT COALESCE(SUM(views),0) FROM contents);`).
		Scan(&st.Content, &st.Parts, &st.Views)
	if err != nil {
		return model.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

func prefixedContentColumns(alias string) string {
	return alias + `.id, ` + alias + `.title, ` + alias + `.type, ` + alias + `.year, ` +
		alias + `.country, ` + alias + `.language, ` + alias + `.genres, ` + alias + `.description, ` +
		alias + `.poster_file_id, ` + alias + `.parts_total, ` + alias + `.views, ` + alias + `.created_at`
}
