// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-cinehub-bot/internal/domain"
	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[int64]*model.User

	saveErr error
	findErr error
	listErr error
	saves   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Save(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	cp := *u
	m.users[u.TelegramID] = &cp
	return nil
}

func (m *mockUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	u, ok := m.users[tgID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) ListTelegramIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]int64, 0, len(m.users))
	for id := range m.users {
		out = append(out, id)
	}
	return out, nil
}

func (m *mockUserRepo) CountUsers(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

// stubClient implements adapter.TelegramClient; only SendMessage records
// anything, the rest are no-ops.
type stubClient struct {
	mu       sync.Mutex
	sentTo   []int64
	failFor  map[int64]error
	lastText string
}

func newStubClient() *stubClient {
	return &stubClient{failFor: make(map[int64]error)}
}

func (s *stubClient) SendMessage(ctx context.Context, chatID int64, text string, kb [][]adapter.InlineButton) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failFor[chatID]; ok {
		return 0, err
	}
	s.sentTo = append(s.sentTo, chatID)
	s.lastText = text
	return len(s.sentTo), nil
}

func (s *stubClient) FetchUpdates(ctx context.Context, offset int64, timeoutSec, limit int) ([]adapter.Update, error) {
	return nil, nil
}

func (s *stubClient) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, kb [][]adapter.InlineButton) (int, error) {
	return 0, nil
}

func (s *stubClient) CopyMessage(ctx context.Context, chatID, fromChatID int64, messageID int) (int, error) {
	return 0, nil
}

func (s *stubClient) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, kb [][]adapter.InlineButton) error {
	return nil
}

func (s *stubClient) EditMessageCaption(ctx context.Context, chatID int64, messageID int, caption string, kb [][]adapter.InlineButton) error {
	return nil
}

func (s *stubClient) EditMessageReplyMarkup(ctx context.Context, chatID int64, messageID int, kb [][]adapter.InlineButton) error {
	return nil
}

func (s *stubClient) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

func (s *stubClient) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	return nil
}

func (s *stubClient) ChatMemberStatus(ctx context.Context, channelID, userID int64) (string, error) {
	return adapter.MemberStatusMember, nil
}
