package bot

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
	"telegram-cinehub-bot/internal/domain/ports/repository"
	"telegram-cinehub-bot/internal/infra/metrics"
	"telegram-cinehub-bot/internal/usecase"
)

// Engine owns the update ingestion loop and the single mutable cursor into
// the update stream. Everything downstream of Run is best-effort: a failed
// handler never stalls the loop and never causes a redelivery.
type Engine struct {
	client    adapter.TelegramClient
	users     usecase.UserUseCase
	stats     usecase.StatsUseCase
	broadcast usecase.BroadcastUseCase
	catalog   repository.CatalogRepository
	settings  repository.SettingsRepository
	states    repository.StateRepository
	gate      *SubscriptionGate
	limiter   *RateLimiter

	cfg Config
	log *zerolog.Logger

	// cursor is the next update id to request. Only the Run goroutine
	// touches it after start.
	cursor int64
}

// Config carries the tunables of the ingestion loop and the identifiers the
// handlers need.
type Config struct {
	BotUsername     string
	ContentChannels []int64

	PollTimeoutSec int
	BatchSize      int
	RetryDelay     time.Duration
}

type Deps struct {
	Client    adapter.TelegramClient
	Users     usecase.UserUseCase
	Stats     usecase.StatsUseCase
	Broadcast usecase.BroadcastUseCase
	Catalog   repository.CatalogRepository
	Settings  repository.SettingsRepository
	States    repository.StateRepository
	Gate      *SubscriptionGate
	Limiter   *RateLimiter
	Log       *zerolog.Logger
}

func New(cfg Config, deps Deps) *Engine {
	if cfg.PollTimeoutSec <= 0 {
		cfg.PollTimeoutSec = 25
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}
	return &Engine{
		client:    deps.Client,
		users:     deps.Users,
		stats:     deps.Stats,
		broadcast: deps.Broadcast,
		catalog:   deps.Catalog,
		settings:  deps.Settings,
		states:    deps.States,
		gate:      deps.Gate,
		limiter:   deps.Limiter,
		cfg:       cfg,
		log:       deps.Log,
	}
}

// Cursor returns the next update id the engine will request.
func (e *Engine) Cursor() int64 { return e.cursor }

// Run polls for updates until ctx is cancelled. The cursor advances past an
// update BEFORE it is handled, so a crashing handler cannot cause the same
// update to be processed twice (at-most-once delivery).
func (e *Engine) Run(ctx context.Context) error {
	e.log.Info().Int64("cursor", e.cursor).Msg("update loop started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := e.client.FetchUpdates(ctx, e.cursor, e.cfg.PollTimeoutSec, e.cfg.BatchSize)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			metrics.IncPollError()
			e.log.Warn().Err(err).Msg("fetch updates failed, backing off")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.cfg.RetryDelay):
			}
			continue
		}

		for _, up := range updates {
			if next := up.ID + 1; next > e.cursor {
				e.cursor = next
			}
			e.handleUpdate(ctx, up)
		}
	}
}

func (e *Engine) handleUpdate(ctx context.Context, up adapter.Update) {
	switch {
	case up.Message != nil:
		metrics.IncUpdate("message")
		e.handleMessage(ctx, up.Message)
	case up.Callback != nil:
		metrics.IncUpdate("callback")
		e.handleCallback(ctx, up.Callback)
	default:
		// Update kinds the bot never subscribes to; nothing to do.
		metrics.IncUpdate("other")
	}
}

var adminCommandRe = regexp.MustCompile(`^/admin(@\w+)?$`)

func (e *Engine) handleMessage(ctx context.Context, msg *adapter.Message) {
	if msg.From == nil || msg.From.ID == 0 || msg.ChatID == 0 {
		metrics.IncDropped("malformed")
		return
	}
	userID := msg.From.ID

	if e.limiter.Limited(userID) {
		metrics.IncDropped("rate_limited")
		return
	}

	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(text, "/start") {
		e.registerUser(ctx, userID, msg.From.Username)
		e.handleStart(ctx, userID, msg.ChatID, text)
		return
	}

	if adminCommandRe.MatchString(text) {
		// /admin works regardless of any pending conversation state.
		e.handleAdminCommand(ctx, userID, msg.ChatID)
		return
	}

	state, err := e.states.Get(ctx, userID)
	if err != nil {
		e.log.Warn().Err(err).Int64("user_id", userID).Msg("state lookup failed")
		return
	}
	if state == model.StateIdle {
		// Free text outside a conversation is ignored.
		return
	}
	e.dispatchState(ctx, state, userID, msg.ChatID, text)
}

// callbackAck is what a callback handler owes the client: every dispatch
// path returns one and handleCallback answers the callback with it, so no
// button is ever left spinning.
type callbackAck struct {
	text  string
	alert bool
}

func (e *Engine) handleCallback(ctx context.Context, cb *adapter.Callback) {
	if cb.From == nil || cb.From.ID == 0 {
		metrics.IncDropped("malformed")
		return
	}
	userID := cb.From.ID

	if e.limiter.Limited(userID) {
		metrics.IncDropped("rate_limited")
		return
	}

	chatID := cb.ChatID
	if chatID == 0 {
		chatID = userID
	}

	cmd := parseCallbackData(cb.Data)
	ack := e.dispatchCommand(ctx, cmd, cb, userID, chatID)
	e.safeAnswer(ctx, cb.ID, ack.text, ack.alert)
}

func (e *Engine) dispatchCommand(ctx context.Context, cmd command, cb *adapter.Callback, userID, chatID int64) callbackAck {
	switch cmd.kind {
	case cmdSubCheck:
		return e.handleSubCheck(ctx, cb, userID, chatID, cmd.payload)

	case cmdMenuSearch:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		e.setState(ctx, userID, model.StateSearchWaitingQuery)
		e.safeSend(ctx, chatID, textSearchPrompt, nil)
		return callbackAck{}

	case cmdMenuLatest:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		e.sendLatestList(ctx, chatID)
		return callbackAck{}

	case cmdMenuTop:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		e.sendTopList(ctx, chatID)
		return callbackAck{}

	case cmdMenuFavs:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		e.sendFavsList(ctx, userID, chatID)
		return callbackAck{}

	case cmdMenuAccount:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		e.sendAccount(ctx, cb.From, chatID)
		return callbackAck{}

	case cmdMenuHelp:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		e.safeSend(ctx, chatID, textHelp, nil)
		return callbackAck{}

	case cmdContent:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		if !e.sendContentCard(ctx, chatID, userID, cmd.contentID) {
			return callbackAck{text: textNotFound}
		}
		return callbackAck{}

	case cmdFavToggle:
		return e.handleFavToggle(ctx, userID, cmd.contentID)

	case cmdWatch:
		if !e.gate.EnsureSubscribed(ctx, userID, chatID, "", true, true) {
			return callbackAck{}
		}
		return e.handleWatch(ctx, userID, chatID, cmd.contentID)

	case cmdPartsPage:
		return e.handlePartsPage(ctx, cb, chatID, cmd)

	case cmdSeasonPick:
		return e.handleSeasonPick(ctx, cb, chatID, cmd)

	case cmdSendPart:
		return e.handleSendPart(ctx, userID, chatID, cmd)

	case cmdListPage:
		return e.handleListPage(ctx, cb, userID, chatID, cmd)

	case cmdBackMenu:
		e.editOrResend(ctx, chatID, cb.MessageID, textWelcome, mainMenuKeyboard())
		return callbackAck{}

	case cmdBackAdmin,
		cmdAdminStats, cmdAdminForced, cmdAdminForcedList, cmdAdminForcedAdd,
		cmdAdminForcedRemove, cmdAdminAdmins, cmdAdminAdminsList,
		cmdAdminAdminsAdd, cmdAdminAdminsRemove, cmdAdminBroadcast,
		cmdAdminSettings, cmdAdminSettingsList, cmdAdminPlaceholder:
		return e.dispatchAdminCommand(ctx, cmd, cb, userID, chatID)
	}

	// cmdUnknown: malformed or stale button, acknowledge and move on.
	return callbackAck{}
}

func (e *Engine) registerUser(ctx context.Context, tgID int64, username string) {
	if _, err := e.users.RegisterOrTouch(ctx, tgID, username); err != nil {
		e.log.Warn().Err(err).Int64("tg_id", tgID).Msg("user registration failed")
	}
}

func (e *Engine) setState(ctx context.Context, userID int64, state model.ConversationState) {
	if err := e.states.Set(ctx, userID, state); err != nil {
		e.log.Warn().Err(err).Int64("user_id", userID).Str("state", string(state)).Msg("set state failed")
	}
}

func (e *Engine) clearState(ctx context.Context, userID int64) {
	if err := e.states.Clear(ctx, userID); err != nil {
		e.log.Warn().Err(err).Int64("user_id", userID).Msg("clear state failed")
	}
}
