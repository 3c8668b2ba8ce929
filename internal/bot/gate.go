package bot

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-cinehub-bot/internal/domain/ports/adapter"
	"telegram-cinehub-bot/internal/domain/ports/repository"
	"telegram-cinehub-bot/internal/infra/metrics"
)

// SubscriptionGate decides whether a user may reach the catalog. The forced
// channel set is re-read from the store on every check (it is security
// relevant); only the membership verdicts themselves are cached.
type SubscriptionGate struct {
	client   adapter.TelegramClient
	settings repository.SettingsRepository
	cache    *SubscriptionCache
	log      *zerolog.Logger
}

func NewSubscriptionGate(
	client adapter.TelegramClient,
	settings repository.SettingsRepository,
	cache *SubscriptionCache,
	log *zerolog.Logger,
) *SubscriptionGate {
	return &SubscriptionGate{client: client, settings: settings, cache: cache, log: log}
}

// EnsureSubscribed reports whether userID passes the gate. With no forced
// channels configured it always passes. On denial with showPrompt set, it
// sends the subscribe keyboard; payload is carried on the confirmation
// button so the interrupted flow can resume.
func (g *SubscriptionGate) EnsureSubscribed(
	ctx context.Context,
	userID, chatID int64,
	payload string,
	showPrompt, useCache bool,
) bool {
	channels, err := g.settings.ForcedChannels(ctx)
	if err != nil {
		// Availability over gating: a store blip must not lock everyone out.
		g.log.Warn().Err(err).Msg("forced channels unavailable; gate bypassed")
		return true
	}
	if len(channels) == 0 {
		return true
	}

	key := g.cache.Key(userID, channels)

	verdict, found := false, false
	if useCache {
		verdict, found = g.cache.Get(key)
		if found {
			metrics.IncSubCacheHit()
		} else {
			metrics.IncSubCacheMiss()
		}
	}
	if !found {
		verdict = g.checkAll(ctx, userID, channels)
		g.cache.Put(key, verdict)
	}

	if verdict {
		return true
	}
	if !showPrompt {
		return false
	}

	links, err := g.settings.ForcedLinks(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("forced links unavailable; using derived links")
		links = nil
	}
	kb := subscribeKeyboard(channels, links, payload)
	if _, err := g.client.SendMessage(ctx, chatID, textSubRequired, kb); err != nil {
		g.log.Warn().Err(err).Int64("chat_id", chatID).Msg("subscribe prompt failed")
		metrics.IncOutboundFailure("send_message")
	}
	return false
}

// checkAll verifies membership in every channel, short-circuiting on the
// first failure. A transport error counts as a failed check: the verdict
// will expire on the short negative TTL and be retried.
func (g *SubscriptionGate) checkAll(ctx context.Context, userID int64, channels []int64) bool {
	for _, channelID := range channels {
		status, err := g.client.ChatMemberStatus(ctx, channelID, userID)
		if err != nil {
			g.log.Warn().Err(err).Int64("channel_id", channelID).Int64("user_id", userID).
				Msg("membership check failed")
			metrics.IncMembershipCheck("error")
			return false
		}
		switch status {
		case adapter.MemberStatusMember, adapter.MemberStatusAdministrator, adapter.MemberStatusCreator:
			metrics.IncMembershipCheck("ok")
		default:
			metrics.IncMembershipCheck("denied")
			return false
		}
	}
	return true
}
