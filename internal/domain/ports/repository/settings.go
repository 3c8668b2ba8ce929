package repository

import "context"

// SettingsRepository stores the runtime-mutable security lists. These are
// read through on every check (no in-process caching): a stale admin or
// forced-channel list is an authorization bug, not a performance win.
// Implementations fall back to configured defaults while no override row
// exists.
type SettingsRepository interface {
	ForcedChannels(ctx context.Context) ([]int64, error)
	SetForcedChannels(ctx context.Context, channels []int64) error

	ForcedLinks(ctx context.Context) (map[int64]string, error)
	SetForcedLinks(ctx context.Context, links map[int64]string) error

	AdminIDs(ctx context.Context) ([]int64, error)
	SetAdminIDs(ctx context.Context, admins []int64) error
}
