package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo keeps per-user conversation state in Redis. The TTL means an
// abandoned flow expires back to idle on its own.
type StateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewStateRepo(client RedisClient, ttl time.Duration) *StateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute // enough to finish any conversational flow
	}
	return &StateRepo{client: client, ttl: ttl}
}

func (s *StateRepo) stateKey(tgID int64) string {
	return fmt.Sprintf("conv_state:%d", tgID)
}

func (s *StateRepo) Get(ctx context.Context, tgID int64) (model.ConversationState, error) {
	data, err := s.client.Get(ctx, s.stateKey(tgID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.StateIdle, nil
		}
		return model.StateIdle, err
	}
	return model.ConversationState(data), nil
}

func (s *StateRepo) Set(ctx context.Context, tgID int64, state model.ConversationState) error {
	if state == model.StateIdle {
		return s.Clear(ctx, tgID)
	}
	return s.client.Set(ctx, s.stateKey(tgID), string(state), s.ttl)
}

func (s *StateRepo) Clear(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.stateKey(tgID))
}
