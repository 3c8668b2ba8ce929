package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"telegram-cinehub-bot/internal/domain/ports/adapter"
	"telegram-cinehub-bot/internal/domain/ports/repository"
	"telegram-cinehub-bot/internal/infra/metrics"
	"telegram-cinehub-bot/internal/infra/worker"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ BroadcastUseCase = (*broadcastUC)(nil)

type BroadcastUseCase interface {
	// BroadcastText delivers message to every known user and returns how
	// many sends succeeded. It blocks until the fan-out completes so the
	// caller can report the final count.
	BroadcastText(ctx context.Context, message string) (int, error)
}

type broadcastUC struct {
	users      repository.UserRepository
	client     adapter.TelegramClient
	workerPool *worker.Pool
	log        *zerolog.Logger
}

func NewBroadcastUseCase(
	users repository.UserRepository,
	client adapter.TelegramClient,
	pool *worker.Pool,
	logger *zerolog.Logger,
) *broadcastUC {
	return &broadcastUC{
		users:      users,
		client:     client,
		workerPool: pool,
		log:        logger,
	}
}

func (uc *broadcastUC) BroadcastText(ctx context.Context, message string) (int, error) {
	ids, err := uc.users.ListTelegramIDs(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("failed to list users for broadcast")
		return 0, err
	}

	runID := ulid.Make().String()
	uc.log.Info().Str("run_id", runID).Int("user_count", len(ids)).Msg("broadcast started")

	// Throttle to respect Telegram's API limits (approx. 30 messages/sec)
	throttle := time.NewTicker(time.Second / 25)
	defer throttle.Stop()

	var wg sync.WaitGroup
	var sent int64
	for _, id := range ids {
		select {
		case <-ctx.Done():
			wg.Wait()
			return int(sent), ctx.Err()
		case <-throttle.C:
		}

		task := uc.sendTask(id, message, &sent, &wg)
		wg.Add(1)
		if err := uc.workerPool.Submit(task); err != nil {
			// Queue saturated: deliver inline rather than dropping the user.
			_ = task(ctx)
		}
	}
	wg.Wait()

	uc.log.Info().Str("run_id", runID).Int64("sent", sent).Int("total", len(ids)).Msg("broadcast finished")
	return int(sent), nil
}

func (uc *broadcastUC) sendTask(telegramID int64, message string, sent *int64, wg *sync.WaitGroup) worker.Task {
	return func(ctx context.Context) error {
		defer wg.Done()
		if _, err := uc.client.SendMessage(ctx, telegramID, message, nil); err != nil {
			// Typically the user blocked the bot; count and move on.
			uc.log.Debug().Err(err).Int64("tg_id", telegramID).Msg("broadcast send failed")
			metrics.IncBroadcastSend("failed")
			return nil
		}
		atomic.AddInt64(sent, 1)
		metrics.IncBroadcastSend("sent")
		return nil
	}
}
