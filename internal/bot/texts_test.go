//go:build !integration

package bot

import (
	"strings"
	"testing"

	"telegram-cinehub-bot/internal/domain/model"
)

func TestFormatCard(t *testing.T) {
	t.Run("should skip the parts line for a movie", func(t *testing.T) {
		c := &model.Content{Title: "Yulduzlararo", Type: model.ContentTypeMovie, Year: "2014"}
		card := formatCard(c)
		if strings.Contains(card, "Qismi:") {
			t.Fatalf("unexpected parts line:\n%s", card)
		}
		if !strings.Contains(card, "Nomi: Yulduzlararo") || !strings.Contains(card, "Turi: Kino") {
			t.Fatalf("card = %q", card)
		}
	})

	t.Run("should include the parts line for a series", func(t *testing.T) {
		c := &model.Content{Title: "Qasoskorlar", Type: model.ContentTypeSeries, PartsTotal: 12}
		card := formatCard(c)
		if !strings.Contains(card, "Qismi: 12") {
			t.Fatalf("card = %q", card)
		}
	})

	t.Run("should render blanks as a dash", func(t *testing.T) {
		c := &model.Content{Title: "X", Type: model.ContentTypeMovie}
		card := formatCard(c)
		if !strings.Contains(card, "Yili: —") || !strings.Contains(card, "Davlati: —") {
			t.Fatalf("card = %q", card)
		}
	})
}

func TestFormatValue(t *testing.T) {
	if formatValue("  ") != "—" {
		t.Fatal("expected dash for whitespace")
	}
	if formatValue("2014") != "2014" {
		t.Fatal("expected value passed through")
	}
}

func TestPartCaption(t *testing.T) {
	t.Run("should omit the season for a movie", func(t *testing.T) {
		c := &model.Content{Title: "Yulduzlararo", Type: model.ContentTypeMovie}
		if got := partCaption(c, 1, 1); got != "Yulduzlararo [1-qism]" {
			t.Fatalf("caption = %q", got)
		}
	})

	t.Run("should include the season for a series", func(t *testing.T) {
		c := &model.Content{Title: "Qasoskorlar", Type: model.ContentTypeSeries}
		if got := partCaption(c, 2, 5); got != "Qasoskorlar [2-fasl 5-qism]" {
			t.Fatalf("caption = %q", got)
		}
	})

	t.Run("should include the season for an anime", func(t *testing.T) {
		c := &model.Content{Title: "Naruto", Type: model.ContentTypeAnime}
		if got := partCaption(c, 1, 3); got != "Naruto [1-fasl 3-qism]" {
			t.Fatalf("caption = %q", got)
		}
	})
}

func TestFormatAccount(t *testing.T) {
	t.Run("should render the username when present", func(t *testing.T) {
		got := formatAccount(10, "tester")
		if !strings.Contains(got, "ID: 10") || !strings.Contains(got, "@tester") {
			t.Fatalf("account = %q", got)
		}
	})

	t.Run("should fall back to a dash without a username", func(t *testing.T) {
		got := formatAccount(10, "")
		if !strings.Contains(got, "@-") {
			t.Fatalf("account = %q", got)
		}
	})
}

func TestBroadcastDoneText(t *testing.T) {
	if got := broadcastDoneText(3); got != "Yuborildi: 3 ta." {
		t.Fatalf("text = %q", got)
	}
}
