// File: internal/bot/mocks_test.go
package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ---- fake transport ----

type sentMessage struct {
	chatID int64
	text   string
	kb     [][]adapter.InlineButton
}

type sentAnswer struct {
	callbackID string
	text       string
	alert      bool
}

type copiedMessage struct {
	chatID     int64
	fromChatID int64
	messageID  int
}

type fetchBatch struct {
	updates []adapter.Update
	err     error
}

// fakeClient scripts FetchUpdates batches and records every outbound call.
// When the script runs out it cancels the loop context so Engine.Run returns.
type fakeClient struct {
	mu sync.Mutex

	batches []fetchBatch
	next    int
	cancel  context.CancelFunc
	offsets []int64

	sent     []sentMessage
	photos   []sentMessage
	edits    []sentMessage
	captions []sentMessage
	markups  []int64
	deleted  []int
	answers  []sentAnswer
	copies   []copiedMessage

	sendErr    error
	copyErr    map[int64]error // by source chat id
	nextCopyID int

	memberStatus map[string]string // "channel|user" -> status
	memberErr    error
	memberCalls  int
}

func newFakeClient(batches ...fetchBatch) *fakeClient {
	return &fakeClient{
		batches:      batches,
		nextCopyID:   1000,
		memberStatus: make(map[string]string),
	}
}

func (f *fakeClient) setMember(channelID, userID int64, status string) {
	f.memberStatus[fmt.Sprintf("%d|%d", channelID, userID)] = status
}

func (f *fakeClient) FetchUpdates(ctx context.Context, offset int64, timeoutSec, limit int) ([]adapter.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, offset)
	if f.next >= len(f.batches) {
		if f.cancel != nil {
			f.cancel()
		}
		return nil, context.Canceled
	}
	b := f.batches[f.next]
	f.next++
	if b.err != nil {
		return nil, b.err
	}
	return b.updates, nil
}

func (f *fakeClient) SendMessage(ctx context.Context, chatID int64, text string, kb [][]adapter.InlineButton) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, kb: kb})
	return len(f.sent), nil
}

func (f *fakeClient) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, kb [][]adapter.InlineButton) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photos = append(f.photos, sentMessage{chatID: chatID, text: caption, kb: kb})
	return len(f.photos), nil
}

func (f *fakeClient) CopyMessage(ctx context.Context, chatID, fromChatID int64, messageID int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.copyErr[fromChatID]; ok {
		return 0, err
	}
	f.copies = append(f.copies, copiedMessage{chatID: chatID, fromChatID: fromChatID, messageID: messageID})
	f.nextCopyID++
	return f.nextCopyID, nil
}

func (f *fakeClient) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, kb [][]adapter.InlineButton) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeClient) EditMessageCaption(ctx context.Context, chatID int64, messageID int, caption string, kb [][]adapter.InlineButton) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.captions = append(f.captions, sentMessage{chatID: chatID, text: caption, kb: kb})
	return nil
}

func (f *fakeClient) EditMessageReplyMarkup(ctx context.Context, chatID int64, messageID int, kb [][]adapter.InlineButton) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markups = append(f.markups, chatID)
	return nil
}

func (f *fakeClient) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeClient) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, sentAnswer{callbackID: callbackID, text: text, alert: showAlert})
	return nil
}

func (f *fakeClient) ChatMemberStatus(ctx context.Context, channelID, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memberCalls++
	if f.memberErr != nil {
		return "", f.memberErr
	}
	if s, ok := f.memberStatus[fmt.Sprintf("%d|%d", channelID, userID)]; ok {
		return s, nil
	}
	return adapter.MemberStatusMember, nil
}

// outboundCount counts every user-visible call except callback answers.
func (f *fakeClient) outboundCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent) + len(f.photos) + len(f.edits) + len(f.captions) +
		len(f.markups) + len(f.deleted) + len(f.copies)
}

// ---- in-memory repositories ----

type memCatalog struct {
	mu       sync.Mutex
	contents map[int64]*model.Content
	parts    []model.Part
	favs     map[string]bool
	views    map[int64]int
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		contents: make(map[int64]*model.Content),
		favs:     make(map[string]bool),
		views:    make(map[int64]int),
	}
}

func favKey(userID, contentID int64) string { return fmt.Sprintf("%d|%d", userID, contentID) }

func (m *memCatalog) addContent(c model.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := c
	m.contents[c.ID] = &cp
}

func (m *memCatalog) addPart(p model.Part) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parts = append(m.parts, p)
}

func (m *memCatalog) FindContent(ctx context.Context, id int64) (*model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contents[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCatalog) CountContent(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.contents), nil
}

func (m *memCatalog) sortedContents(less func(a, b *model.Content) bool) []model.Content {
	out := make([]model.Content, 0, len(m.contents))
	for _, c := range m.contents {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func page(items []model.Content, limit, offset int) []model.Content {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (m *memCatalog) ListLatest(ctx context.Context, limit, offset int) ([]model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sortedContents(func(a, b *model.Content) bool { return a.CreatedAt.After(b.CreatedAt) })
	return page(all, limit, offset), nil
}

func (m *memCatalog) ListTop(ctx context.Context, limit, offset int) ([]model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sortedContents(func(a, b *model.Content) bool { return a.Views > b.Views })
	return page(all, limit, offset), nil
}

func (m *memCatalog) ListByType(ctx context.Context, t model.ContentType, limit, offset int) ([]model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Content
	for _, c := range m.contents {
		if c.Type == t {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return page(all, limit, offset), nil
}

func (m *memCatalog) CountByType(ctx context.Context, t model.ContentType) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.contents {
		if c.Type == t {
			n++
		}
	}
	return n, nil
}

func (m *memCatalog) matches(c *model.Content, query string) bool {
	return strings.Contains(strings.ToLower(c.Title), strings.ToLower(query))
}

func (m *memCatalog) Search(ctx context.Context, query string, limit, offset int) ([]model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Content
	for _, c := range m.contents {
		if m.matches(c, query) {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (m *memCatalog) CountSearch(ctx context.Context, query string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.contents {
		if m.matches(c, query) {
			n++
		}
	}
	return n, nil
}

func (m *memCatalog) ListSeasons(ctx context.Context, contentID int64) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[int]bool{}
	var seasons []int
	for _, p := range m.parts {
		if p.ContentID == contentID && !seen[p.Season] {
			seen[p.Season] = true
			seasons = append(seasons, p.Season)
		}
	}
	sort.Ints(seasons)
	return seasons, nil
}

func (m *memCatalog) ListParts(ctx context.Context, contentID int64, season int) ([]model.Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Part
	for _, p := range m.parts {
		if p.ContentID == contentID && p.Season == season {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *memCatalog) FindPart(ctx context.Context, partID int64) (*model.Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.parts {
		if p.ID == partID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCatalog) FindPartByNumber(ctx context.Context, contentID int64, season, number int) (*model.Part, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.parts {
		if p.ContentID == contentID && p.Season == season && p.Number == number {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCatalog) IncrementViews(ctx context.Context, contentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[contentID]++
	if c, ok := m.contents[contentID]; ok {
		c.Views++
	}
	return nil
}

func (m *memCatalog) IsFavorite(ctx context.Context, userID, contentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favs[favKey(userID, contentID)], nil
}

func (m *memCatalog) ToggleFavorite(ctx context.Context, userID, contentID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := favKey(userID, contentID)
	if m.favs[key] {
		delete(m.favs, key)
		return false, nil
	}
	m.favs[key] = true
	return true, nil
}

func (m *memCatalog) CountFavorites(ctx context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	prefix := fmt.Sprintf("%d|", userID)
	for k := range m.favs {
		if strings.HasPrefix(k, prefix) {
			n++
		}
	}
	return n, nil
}

func (m *memCatalog) ListFavorites(ctx context.Context, userID int64, limit, offset int) ([]model.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []model.Content
	for id, c := range m.contents {
		if m.favs[favKey(userID, id)] {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

func (m *memCatalog) Stats(ctx context.Context) (model.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var views int64
	for _, c := range m.contents {
		views += c.Views
	}
	return model.Stats{Content: len(m.contents), Parts: len(m.parts), Views: views}, nil
}

type memSettings struct {
	mu       sync.Mutex
	channels []int64
	links    map[int64]string
	admins   []int64

	setChannelCalls int
	setAdminCalls   int
}

func newMemSettings() *memSettings {
	return &memSettings{links: make(map[int64]string)}
}

func (m *memSettings) ForcedChannels(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.channels...), nil
}

func (m *memSettings) SetForcedChannels(ctx context.Context, channels []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setChannelCalls++
	m.channels = append([]int64(nil), channels...)
	return nil
}

func (m *memSettings) ForcedLinks(ctx context.Context) (map[int64]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[int64]string, len(m.links))
	for k, v := range m.links {
		out[k] = v
	}
	return out, nil
}

func (m *memSettings) SetForcedLinks(ctx context.Context, links map[int64]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = links
	return nil
}

func (m *memSettings) AdminIDs(ctx context.Context) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.admins...), nil
}

func (m *memSettings) SetAdminIDs(ctx context.Context, admins []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setAdminCalls++
	m.admins = append([]int64(nil), admins...)
	return nil
}

type memStates struct {
	mu    sync.Mutex
	store map[int64]model.ConversationState
}

func newMemStates() *memStates {
	return &memStates{store: make(map[int64]model.ConversationState)}
}

func (m *memStates) Get(ctx context.Context, tgID int64) (model.ConversationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store[tgID], nil
}

func (m *memStates) Set(ctx context.Context, tgID int64, state model.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[tgID] = state
	return nil
}

func (m *memStates) Clear(ctx context.Context, tgID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, tgID)
	return nil
}

// ---- fake use cases ----

type fakeUserUC struct {
	mu    sync.Mutex
	calls []int64
}

func (f *fakeUserUC) RegisterOrTouch(ctx context.Context, tgID int64, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tgID)
	return model.NewUser("", tgID, username)
}

func (f *fakeUserUC) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls), nil
}

type fakeStatsUC struct {
	stats model.Stats
	err   error
}

func (f *fakeStatsUC) Totals(ctx context.Context) (model.Stats, error) {
	return f.stats, f.err
}

type fakeBroadcastUC struct {
	mu       sync.Mutex
	lastText string
	sent     int
	err      error
}

func (f *fakeBroadcastUC) BroadcastText(ctx context.Context, message string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastText = message
	return f.sent, f.err
}

// ---- engine helpers ----

type testEnv struct {
	client   *fakeClient
	catalog  *memCatalog
	settings *memSettings
	states   *memStates
	users    *fakeUserUC
	stats    *fakeStatsUC
	bcast    *fakeBroadcastUC
	engine   *Engine
}

func newTestEnv(batches ...fetchBatch) *testEnv {
	env := &testEnv{
		client:   newFakeClient(batches...),
		catalog:  newMemCatalog(),
		settings: newMemSettings(),
		states:   newMemStates(),
		users:    &fakeUserUC{},
		stats:    &fakeStatsUC{},
		bcast:    &fakeBroadcastUC{},
	}

	cache := NewSubscriptionCache(20*time.Second, 2*time.Second, 100)
	gate := NewSubscriptionGate(env.client, env.settings, cache, newTestLogger())

	env.engine = New(
		Config{
			ContentChannels: []int64{-100500},
			PollTimeoutSec:  1,
			BatchSize:       100,
			RetryDelay:      time.Millisecond,
		},
		Deps{
			Client:    env.client,
			Users:     env.users,
			Stats:     env.stats,
			Broadcast: env.bcast,
			Catalog:   env.catalog,
			Settings:  env.settings,
			States:    env.states,
			Gate:      gate,
			Limiter:   NewRateLimiter(0), // most tests do not exercise the limiter
			Log:       newTestLogger(),
		},
	)
	return env
}

// run drives the engine until the scripted batches are exhausted.
func (env *testEnv) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env.client.cancel = cancel
	return env.engine.Run(ctx)
}

func msgUpdate(id, userID int64, text string) adapter.Update {
	return adapter.Update{
		ID: id,
		Message: &adapter.Message{
			ID:     int(id),
			From:   &adapter.Sender{ID: userID, Username: "tester"},
			ChatID: userID,
			Text:   text,
		},
	}
}

func cbUpdate(id, userID int64, messageID int, data string) adapter.Update {
	return adapter.Update{
		ID: id,
		Callback: &adapter.Callback{
			ID:        fmt.Sprintf("cb-%d", id),
			From:      &adapter.Sender{ID: userID, Username: "tester"},
			ChatID:    userID,
			MessageID: messageID,
			Data:      data,
		},
	}
}
