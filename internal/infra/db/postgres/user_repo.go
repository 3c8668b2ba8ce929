package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-cinehub-bot/internal/domain"
	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Save(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, telegram_id, username, registered_at, last_active_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (telegram_id) DO UPDATE SET
  username=$3, last_active_at=$5;
`
	if _, err := r.pool.Exec(ctx, q, u.ID, u.TelegramID, u.Username, u.RegisteredAt, u.LastActiveAt); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	const q = `
SELECT id, telegram_id, username, registered_at, last_active_at
  FROM users WHERE telegram_id=$1;
`
	var u model.User
	err := r.pool.QueryRow(ctx, q, tgID).Scan(&u.ID, &u.TelegramID, &u.Username, &u.RegisteredAt, &u.LastActiveAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ListTelegramIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT telegram_id FROM users ORDER BY registered_at;`)
	if err != nil {
		return nil, fmt.Errorf("list telegram ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
