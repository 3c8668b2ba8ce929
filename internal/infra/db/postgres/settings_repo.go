package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-cinehub-bot/internal/domain/ports/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo stores the runtime-mutable lists (forced channels, invite
// links, admins) as JSON values in a key/value table. While no override row
// exists the configured defaults apply, so a fresh database starts with the
// deployment's static config.
type SettingsRepo struct {
	pool *pgxpool.Pool

	defaultForcedChannels []int64
	defaultForcedLinks    map[int64]string
	defaultAdminIDs       []int64
}

const (
	keyForcedChannels = "forced_channels"
	keyForcedLinks    = "forced_links"
	keyAdminIDs       = "admin_ids"
)

func NewSettingsRepo(pool *pgxpool.Pool, forcedChannels []int64, forcedLinks map[int64]string, adminIDs []int64) *SettingsRepo {
	return &SettingsRepo{
		pool:                  pool,
		defaultForcedChannels: forcedChannels,
		defaultForcedLinks:    forcedLinks,
		defaultAdminIDs:       adminIDs,
	}
}

func (r *SettingsRepo) get(ctx context.Context, key string, dst any) (bool, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1;`, key).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("load setting %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

func (r *SettingsRepo) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO settings (key, value) VALUES ($1,$2)
ON CONFLICT (key) DO UPDATE SET value=$2;`, key, raw)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}

func (r *SettingsRepo) ForcedChannels(ctx context.Context) ([]int64, error) {
	var channels []int64
	found, err := r.get(ctx, keyForcedChannels, &channels)
	if err != nil {
		return nil, err
	}
	if !found {
		return r.defaultForcedChannels, nil
	}
	return channels, nil
}

func (r *SettingsRepo) SetForcedChannels(ctx context.Context, channels []int64) error {
	if channels == nil {
		channels = []int64{}
	}
	return r.set(ctx, keyForcedChannels, channels)
}

func (r *SettingsRepo) ForcedLinks(ctx context.Context) (map[int64]string, error) {
	var links map[int64]string
	found, err := r.get(ctx, keyForcedLinks, &links)
	if err != nil {
		return nil, err
	}
	if !found {
		return r.defaultForcedLinks, nil
	}
	return links, nil
}

func (r *SettingsRepo) SetForcedLinks(ctx context.Context, links map[int64]string) error {
	if links == nil {
		links = map[int64]string{}
	}
	return r.set(ctx, keyForcedLinks, links)
}

func (r *SettingsRepo) AdminIDs(ctx context.Context) ([]int64, error) {
	var admins []int64
	found, err := r.get(ctx, keyAdminIDs, &admins)
	if err != nil {
		return nil, err
	}
	if !found {
		return r.defaultAdminIDs, nil
	}
	return admins, nil
}

func (r *SettingsRepo) SetAdminIDs(ctx context.Context, admins []int64) error {
	if admins == nil {
		admins = []int64{}
	}
	return r.set(ctx, keyAdminIDs, admins)
}
