package repository

import (
	"context"

	"telegram-cinehub-bot/internal/domain/model"
)

// StateRepository persists per-user conversation state outside the process.
// Get returns model.StateIdle when the user has no stored state.
type StateRepository interface {
	Get(ctx context.Context, tgID int64) (model.ConversationState, error)
	Set(ctx context.Context, tgID int64, state model.ConversationState) error
	Clear(ctx context.Context, tgID int64) error
}
