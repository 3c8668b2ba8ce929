// File: internal/usecase/broadcast_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/infra/worker"
)

func TestBroadcastUC_BroadcastText(t *testing.T) {
	newStartedPool := func(t *testing.T) *worker.Pool {
		t.Helper()
		pool := worker.NewPool(2, newTestLogger())
		ctx, cancel := context.WithCancel(context.Background())
		pool.Start(ctx)
		t.Cleanup(func() {
			pool.Stop()
			cancel()
		})
		return pool
	}

	seedUsers := func(repo *mockUserRepo, ids ...int64) {
		for _, id := range ids {
			u, _ := model.NewUser("", id, "tester")
			repo.Save(context.Background(), u)
		}
	}

	t.Run("should deliver to every user and report the count", func(t *testing.T) {
		// --- Arrange ---
		repo := newMockUserRepo()
		seedUsers(repo, 10, 11, 12)
		client := newStubClient()
		uc := NewBroadcastUseCase(repo, client, newStartedPool(t), newTestLogger())

		// --- Act ---
		sent, err := uc.BroadcastText(context.Background(), "salom")

		// --- Assert ---
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent != 3 {
			t.Fatalf("sent = %d", sent)
		}
		if client.lastText != "salom" {
			t.Fatalf("text = %q", client.lastText)
		}
	})

	t.Run("should count only successful sends", func(t *testing.T) {
		// --- Arrange ---
		repo := newMockUserRepo()
		seedUsers(repo, 10, 11, 12)
		client := newStubClient()
		client.failFor[11] = errors.New("blocked by user")
		uc := NewBroadcastUseCase(repo, client, newStartedPool(t), newTestLogger())

		// --- Act ---
		sent, err := uc.BroadcastText(context.Background(), "salom")

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected a blocked recipient to be absorbed, got %v", err)
		}
		if sent != 2 {
			t.Fatalf("sent = %d", sent)
		}
	})

	t.Run("should surface a listing failure", func(t *testing.T) {
		// --- Arrange ---
		repo := newMockUserRepo()
		repo.listErr = errors.New("db down")
		uc := NewBroadcastUseCase(repo, newStubClient(), newStartedPool(t), newTestLogger())

		// --- Act ---
		sent, err := uc.BroadcastText(context.Background(), "salom")

		// --- Assert ---
		if err == nil {
			t.Fatal("expected the listing error to propagate")
		}
		if sent != 0 {
			t.Fatalf("sent = %d", sent)
		}
	})

	t.Run("should finish immediately with no users", func(t *testing.T) {
		// --- Arrange ---
		repo := newMockUserRepo()
		uc := NewBroadcastUseCase(repo, newStubClient(), newStartedPool(t), newTestLogger())

		// --- Act ---
		sent, err := uc.BroadcastText(context.Background(), "salom")

		// --- Assert ---
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent != 0 {
			t.Fatalf("sent = %d", sent)
		}
	})
}
