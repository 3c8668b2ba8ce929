package bot

import (
	"context"

	"telegram-cinehub-bot/internal/domain/ports/adapter"
	"telegram-cinehub-bot/internal/infra/metrics"
)

// Outbound calls made during update handling are best-effort: a failure is
// logged and counted but never propagated, so one user's blocked chat cannot
// break the loop for everyone else.

func (e *Engine) safeSend(ctx context.Context, chatID int64, text string, kb [][]adapter.InlineButton) {
	if _, err := e.client.SendMessage(ctx, chatID, text, kb); err != nil {
		e.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send message failed")
		metrics.IncOutboundFailure("send_message")
	}
}

func (e *Engine) safeSendPhoto(ctx context.Context, chatID int64, fileID, caption string, kb [][]adapter.InlineButton) {
	if _, err := e.client.SendPhoto(ctx, chatID, fileID, caption, kb); err != nil {
		e.log.Warn().Err(err).Int64("chat_id", chatID).Msg("send photo failed, falling back to text")
		metrics.IncOutboundFailure("send_photo")
		e.safeSend(ctx, chatID, caption, kb)
	}
}

func (e *Engine) safeAnswer(ctx context.Context, callbackID, text string, showAlert bool) {
	if callbackID == "" {
		return
	}
	if err := e.client.AnswerCallback(ctx, callbackID, text, showAlert); err != nil {
		e.log.Debug().Err(err).Msg("answer callback failed")
		metrics.IncOutboundFailure("answer_callback")
	}
}

func (e *Engine) safeDelete(ctx context.Context, chatID int64, messageID int) {
	if messageID <= 0 {
		return
	}
	if err := e.client.DeleteMessage(ctx, chatID, messageID); err != nil {
		e.log.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("delete message failed")
		metrics.IncOutboundFailure("delete_message")
	}
}

func (e *Engine) safeEditMarkup(ctx context.Context, chatID int64, messageID int, kb [][]adapter.InlineButton) {
	if err := e.client.EditMessageReplyMarkup(ctx, chatID, messageID, kb); err != nil {
		e.log.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("edit markup failed")
		metrics.IncOutboundFailure("edit_markup")
	}
}

// editOrResend updates an existing message in place, degrading through an
// ordered list of strategies: edit the text, then edit the caption (the
// message may be a photo card), then send a fresh message. The first one
// that succeeds wins.
func (e *Engine) editOrResend(ctx context.Context, chatID int64, messageID int, text string, kb [][]adapter.InlineButton) {
	if messageID <= 0 {
		e.safeSend(ctx, chatID, text, kb)
		return
	}

	strategies := []struct {
		op  string
		run func() error
	}{
		{"edit_text", func() error {
			return e.client.EditMessageText(ctx, chatID, messageID, text, kb)
		}},
		{"edit_caption", func() error {
			return e.client.EditMessageCaption(ctx, chatID, messageID, text, kb)
		}},
		{"send_message", func() error {
			_, err := e.client.SendMessage(ctx, chatID, text, kb)
			return err
		}},
	}

	for _, s := range strategies {
		err := s.run()
		if err == nil {
			return
		}
		e.log.Debug().Err(err).Str("op", s.op).Int64("chat_id", chatID).Msg("edit strategy failed")
		metrics.IncOutboundFailure(s.op)
	}
}
