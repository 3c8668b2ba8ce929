package bot

import (
	"context"
	"strings"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/infra/metrics"
)

// dispatchState routes free text while a conversation is pending. A state
// the current build no longer knows (e.g. left over from an older version)
// is cleared so the user is not stuck.
func (e *Engine) dispatchState(ctx context.Context, state model.ConversationState, userID, chatID int64, text string) {
	switch state {
	case model.StateSearchWaitingQuery:
		e.handleSearchInput(ctx, userID, chatID, text)
	case model.StateAdminForcedAdd:
		e.handleForcedAddInput(ctx, userID, chatID, text)
	case model.StateAdminForcedRemove:
		e.handleForcedRemoveInput(ctx, userID, chatID, text)
	case model.StateAdminAdminsAdd:
		e.handleAdminsAddInput(ctx, userID, chatID, text)
	case model.StateAdminAdminsRemove:
		e.handleAdminsRemoveInput(ctx, userID, chatID, text)
	case model.StateBroadcastWaiting:
		e.handleBroadcastInput(ctx, userID, chatID, text)
	default:
		metrics.IncDropped("unknown_state")
		e.log.Warn().Str("state", string(state)).Int64("user_id", userID).Msg("unknown conversation state, resetting")
		e.clearState(ctx, userID)
	}
}

func (e *Engine) handleSearchInput(ctx context.Context, userID, chatID int64, text string) {
	if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
		return
	}

	query := strings.TrimSpace(text)
	if query == "" {
		// Re-prompt; the pending state stays so the next message is the query.
		e.safeSend(ctx, chatID, textSearchPrompt, nil)
		return
	}

	e.clearState(ctx, userID)
	e.showSearchResults(ctx, chatID, query)
}
