//go:build !integration

package bot

import (
	"fmt"
	"testing"

	"telegram-cinehub-bot/internal/domain/model"
)

func someContents(n int) []model.Content {
	out := make([]model.Content, n)
	for i := range out {
		out[i] = model.Content{ID: int64(i + 1), Title: fmt.Sprintf("Film %d", i+1)}
	}
	return out
}

func someParts(contentID int64, season, n int) []model.Part {
	out := make([]model.Part, n)
	for i := range out {
		out[i] = model.Part{
			ID:        int64(i + 1),
			ContentID: contentID,
			Season:    season,
			Number:    i + 1,
		}
	}
	return out
}

func TestSubscribeKeyboard(t *testing.T) {
	t.Run("should derive a t.me link when no override exists", func(t *testing.T) {
		kb := subscribeKeyboard([]int64{-1001234}, nil, "")
		if got := kb[0][0].URL; got != "https://t.me/1234" {
			t.Fatalf("derived link = %q", got)
		}
	})

	t.Run("should prefer the stored invite link", func(t *testing.T) {
		links := map[int64]string{-1001234: "https://t.me/+abcd"}
		kb := subscribeKeyboard([]int64{-1001234}, links, "")
		if got := kb[0][0].URL; got != "https://t.me/+abcd" {
			t.Fatalf("link = %q", got)
		}
	})

	t.Run("should number the buttons when several channels are forced", func(t *testing.T) {
		kb := subscribeKeyboard([]int64{-1, -2}, nil, "")
		if kb[0][0].Text != "🔗 1-kanalga obuna" || kb[1][0].Text != "🔗 2-kanalga obuna" {
			t.Fatalf("texts = %q, %q", kb[0][0].Text, kb[1][0].Text)
		}
	})

	t.Run("should append the payload to the confirmation callback", func(t *testing.T) {
		kb := subscribeKeyboard([]int64{-1}, nil, "content_7")
		confirm := kb[len(kb)-1][0]
		if confirm.Data != "sub:check:content_7" {
			t.Fatalf("confirmation data = %q", confirm.Data)
		}
	})

	t.Run("should use the bare check without a payload", func(t *testing.T) {
		kb := subscribeKeyboard([]int64{-1}, nil, "")
		confirm := kb[len(kb)-1][0]
		if confirm.Data != "sub:check" {
			t.Fatalf("confirmation data = %q", confirm.Data)
		}
	})
}

func TestContentListKeyboard(t *testing.T) {
	t.Run("should omit pagination when everything fits one page", func(t *testing.T) {
		kb := contentListKeyboard(someContents(listPageSize), 1, listPageSize, "latest")
		// entries + back row only
		if len(kb) != listPageSize+1 {
			t.Fatalf("rows = %d", len(kb))
		}
	})

	t.Run("should offer only a forward button on the first page", func(t *testing.T) {
		kb := contentListKeyboard(someContents(listPageSize), 1, 25, "latest")
		nav := kb[listPageSize]
		if len(nav) != 1 || nav[0].Data != "page:latest:2" {
			t.Fatalf("nav = %+v", nav)
		}
	})

	t.Run("should offer only a back button on the last page", func(t *testing.T) {
		kb := contentListKeyboard(someContents(5), 3, 25, "latest")
		nav := kb[5]
		if len(nav) != 1 || nav[0].Data != "page:latest:2" {
			t.Fatalf("nav = %+v", nav)
		}
	})

	t.Run("should offer both directions on a middle page", func(t *testing.T) {
		kb := contentListKeyboard(someContents(listPageSize), 2, 25, "top")
		nav := kb[listPageSize]
		if len(nav) != 2 || nav[0].Data != "page:top:1" || nav[1].Data != "page:top:3" {
			t.Fatalf("nav = %+v", nav)
		}
	})

	t.Run("should embed the encoded query in search pagination", func(t *testing.T) {
		prefix := searchListPrefix("uzbek kino")
		kb := contentListKeyboard(someContents(listPageSize), 1, 25, prefix)
		nav := kb[listPageSize]
		if nav[0].Data != "page:search:uzbek+kino:2" {
			t.Fatalf("nav data = %q", nav[0].Data)
		}
	})
}

func TestPartsKeyboard(t *testing.T) {
	t.Run("should lay parts out four to a row", func(t *testing.T) {
		kb := partsKeyboard(7, someParts(7, 1, 10), 1, 1)
		if len(kb[0]) != 4 || len(kb[1]) != 4 || len(kb[2]) != 2 {
			t.Fatalf("row widths = %d,%d,%d", len(kb[0]), len(kb[1]), len(kb[2]))
		}
		if kb[0][0].Data != "part:7:1:1" {
			t.Fatalf("first button data = %q", kb[0][0].Data)
		}
	})

	t.Run("should paginate past a full page", func(t *testing.T) {
		kb := partsKeyboard(7, someParts(7, 1, partsPerPage+1), 1, 1)
		nav := kb[len(kb)-2]
		if len(nav) != 1 || nav[0].Data != "parts:7:1:2" {
			t.Fatalf("nav = %+v", nav)
		}
	})

	t.Run("should show the overflow part on the second page", func(t *testing.T) {
		kb := partsKeyboard(7, someParts(7, 2, partsPerPage+1), 2, 2)
		if kb[0][0].Data != fmt.Sprintf("part:7:2:%d", partsPerPage+1) {
			t.Fatalf("first button data = %q", kb[0][0].Data)
		}
		nav := kb[len(kb)-2]
		if len(nav) != 1 || nav[0].Data != "parts:7:2:1" {
			t.Fatalf("nav = %+v", nav)
		}
	})

	t.Run("should keep the footer even with no parts", func(t *testing.T) {
		kb := partsKeyboard(7, nil, 1, 1)
		if len(kb) != 1 {
			t.Fatalf("rows = %d", len(kb))
		}
		footer := kb[0]
		if footer[0].Data != "content:7" || footer[1].Data != "back:menu" {
			t.Fatalf("footer = %+v", footer)
		}
	})
}

func TestSeasonsKeyboard(t *testing.T) {
	t.Run("should lay seasons out two to a row", func(t *testing.T) {
		kb := seasonsKeyboard(7, []int{1, 2, 3})
		if len(kb[0]) != 2 || len(kb[1]) != 1 {
			t.Fatalf("row widths = %d,%d", len(kb[0]), len(kb[1]))
		}
		if kb[0][1].Data != "season:7:2" || kb[0][1].Text != "2-fasl" {
			t.Fatalf("second button = %+v", kb[0][1])
		}
	})
}
