package bot

import (
	"context"
	"strconv"
	"strings"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
	"telegram-cinehub-bot/internal/infra/metrics"
)

const (
	deepLinkPartPrefix    = "dlp_"
	deepLinkContentPrefix = "content_"
)

// handleStart serves /start with an optional deep-link payload. Deep links
// carry the payload through the subscription prompt so the requested item is
// delivered right after the user confirms.
func (e *Engine) handleStart(ctx context.Context, userID, chatID int64, text string) {
	payload := ""
	if i := strings.IndexByte(text, ' '); i >= 0 {
		payload = strings.TrimSpace(text[i+1:])
	}

	switch {
	case strings.HasPrefix(payload, deepLinkPartPrefix):
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, payload, true, true) {
			return
		}
		e.deliverPartByID(ctx, chatID, parseDeepLinkID(payload, deepLinkPartPrefix))

	case strings.HasPrefix(payload, deepLinkContentPrefix):
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, payload, true, true) {
			return
		}
		if !e.sendContentCard(ctx, chatID, userID, parseDeepLinkID(payload, deepLinkContentPrefix)) {
			e.safeSend(ctx, chatID, textNotFound, nil)
		}

	default:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return
		}
		e.clearState(ctx, userID)
		e.safeSend(ctx, chatID, textWelcome, mainMenuKeyboard())
	}
}

// handleSubCheck re-verifies membership with the cache bypassed, removes the
// prompt message on success and resumes the interrupted deep link, if any.
func (e *Engine) handleSubCheck(ctx context.Context, cb *adapter.Callback, userID, chatID int64, payload string) callbackAck {
	if !e.gate.EnsureSubscribed(ctx, userID, chatID, payload, false, false) {
		return callbackAck{text: textSubDenied, alert: true}
	}

	e.safeDelete(ctx, chatID, cb.MessageID)

	if strings.HasPrefix(payload, deepLinkPartPrefix) {
		e.deliverPartByID(ctx, chatID, parseDeepLinkID(payload, deepLinkPartPrefix))
		return callbackAck{text: textSubVerified}
	}

	e.safeSend(ctx, chatID, textWelcome, mainMenuKeyboard())
	return callbackAck{text: textSubVerified}
}

// parseDeepLinkID extracts the numeric id from a deep-link payload; a
// malformed payload yields zero, which no row matches.
func parseDeepLinkID(payload, prefix string) int64 {
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, prefix), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (e *Engine) deliverPartByID(ctx context.Context, chatID, partID int64) {
	part, err := e.catalog.FindPart(ctx, partID)
	if err != nil {
		e.log.Warn().Err(err).Int64("part_id", partID).Msg("part lookup failed")
		return
	}
	if part == nil {
		// Stale or fabricated link; stay silent like an unknown command.
		return
	}
	if !e.deliverPart(ctx, chatID, part) {
		e.safeSend(ctx, chatID, textNoContent, nil)
	}
}

// deliverPart copies the stored channel message to the chat, bumps the view
// counter and rewrites the caption to the canonical card line. Only the copy
// itself is load-bearing; counter and caption are best-effort.
func (e *Engine) deliverPart(ctx context.Context, chatID int64, part *model.Part) bool {
	newMsgID, ok := e.copyFromChannels(ctx, chatID, part.ChannelMessageID)
	if !ok {
		return false
	}

	if err := e.catalog.IncrementViews(ctx, part.ContentID); err != nil {
		e.log.Warn().Err(err).Int64("content_id", part.ContentID).Msg("view increment failed")
	}

	e.applyPartCaption(ctx, chatID, newMsgID, part)
	return true
}

// copyFromChannels tries each configured content channel in order until one
// holds the message. Returns the new message id in the destination chat.
func (e *Engine) copyFromChannels(ctx context.Context, chatID int64, channelMessageID int) (int, bool) {
	for _, channelID := range e.cfg.ContentChannels {
		newID, err := e.client.CopyMessage(ctx, chatID, channelID, channelMessageID)
		if err != nil {
			e.log.Debug().Err(err).Int64("channel_id", channelID).Int("message_id", channelMessageID).
				Msg("copy from channel failed")
			metrics.IncOutboundFailure("copy_message")
			continue
		}
		return newID, true
	}
	return 0, false
}

func (e *Engine) applyPartCaption(ctx context.Context, chatID int64, messageID int, part *model.Part) {
	content, err := e.catalog.FindContent(ctx, part.ContentID)
	if err != nil || content == nil || content.Title == "" {
		return
	}
	caption := partCaption(content, part.Season, part.Number)
	if err := e.client.EditMessageCaption(ctx, chatID, messageID, caption, nil); err != nil {
		e.log.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("caption rewrite failed")
		metrics.IncOutboundFailure("edit_caption")
	}
}
