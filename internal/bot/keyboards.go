package bot

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"telegram-cinehub-bot/internal/domain/model"
	"telegram-cinehub-bot/internal/domain/ports/adapter"
)

// Keyboard builders are pure functions from domain values to inline button
// layouts; they never touch the network or the store.

const (
	listPageSize  = 10
	partsPerPage  = 24
	partsRowWidth = 4
)

func btn(text, data string) adapter.InlineButton {
	return adapter.InlineButton{Text: text, Data: data}
}

func urlBtn(text, u string) adapter.InlineButton {
	return adapter.InlineButton{Text: text, URL: u}
}

func mainMenuKeyboard() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{btn("🔎 Qidiruv", "menu:search"), btn("🆕 Yangi", "menu:latest")},
		{btn("🔥 Top", "menu:top"), btn("⭐ Saqlangan", "menu:favs")},
		{btn("👤 Profil", "menu:account"), btn("ℹ️ Yordam", "menu:help")},
	}
}

// forcedChannelURL resolves the join link for a gated channel: the admin
// override when present, else the public t.me link derived from the id.
func forcedChannelURL(channelID int64, links map[int64]string) string {
	if u, ok := links[channelID]; ok {
		return u
	}
	return "https://t.me/" + strings.Replace(strconv.FormatInt(channelID, 10), "-100", "", 1)
}

// subscribeKeyboard renders one join button per gated channel plus the
// confirmation button. The confirmation carries the original deep-link
// payload so the interrupted flow resumes after verification.
func subscribeKeyboard(channels []int64, links map[int64]string, payload string) [][]adapter.InlineButton {
	rows := make([][]adapter.InlineButton, 0, len(channels)+1)
	for i, channelID := range channels {
		text := "🔗 Kanalga obuna"
		if len(channels) > 1 {
			text = fmt.Sprintf("🔗 %d-kanalga obuna", i+1)
		}
		rows = append(rows, []adapter.InlineButton{urlBtn(text, forcedChannelURL(channelID, links))})
	}
	callback := "sub:check"
	if payload != "" {
		callback = "sub:check:" + payload
	}
	rows = append(rows, []adapter.InlineButton{btn("✅ Tekshirdim", callback)})
	return rows
}

// contentListKeyboard renders one row per entry plus pagination when the
// total exceeds a page. prefix is the page callback list kind, e.g. "latest"
// or "search:<urlencoded query>".
func contentListKeyboard(items []model.Content, page, total int, prefix string) [][]adapter.InlineButton {
	rows := make([][]adapter.InlineButton, 0, len(items)+2)
	for _, item := range items {
		rows = append(rows, []adapter.InlineButton{
			btn(item.Title, "content:"+strconv.FormatInt(item.ID, 10)),
		})
	}

	if total > listPageSize {
		var nav []adapter.InlineButton
		if page > 1 {
			nav = append(nav, btn("⬅️ Oldingi", fmt.Sprintf("page:%s:%d", prefix, page-1)))
		}
		if page*listPageSize < total {
			nav = append(nav, btn("Keyingi ➡️", fmt.Sprintf("page:%s:%d", prefix, page+1)))
		}
		if len(nav) > 0 {
			rows = append(rows, nav)
		}
	}

	rows = append(rows, []adapter.InlineButton{btn("⬅️ Orqaga", "back:menu")})
	return rows
}

func searchListPrefix(query string) string {
	return "search:" + url.QueryEscape(query)
}

func contentCardKeyboard(contentID int64, isFav bool) [][]adapter.InlineButton {
	favText := "⭐ Saqlash"
	if isFav {
		favText = "✅ Saqlangan"
	}
	id := strconv.FormatInt(contentID, 10)
	return [][]adapter.InlineButton{
		{btn("▶️ Tomosha qilish", "watch:"+id+":1")},
		{btn(favText, "fav:"+id)},
		{btn("⬅️ Orqaga", "back:menu")},
	}
}

// partsKeyboard lays out part numbers four to a row, one page at a time,
// with pagination and the list/back footer.
func partsKeyboard(contentID int64, parts []model.Part, page, season int) [][]adapter.InlineButton {
	var rows [][]adapter.InlineButton

	start := (page - 1) * partsPerPage
	if start < 0 {
		start = 0
	}
	end := start + partsPerPage
	if start > len(parts) {
		start = len(parts)
	}
	if end > len(parts) {
		end = len(parts)
	}

	var row []adapter.InlineButton
	for _, p := range parts[start:end] {
		row = append(row, btn(
			strconv.Itoa(p.Number),
			fmt.Sprintf("part:%d:%d:%d", contentID, season, p.Number),
		))
		if len(row) == partsRowWidth {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	totalPages := (len(parts) + partsPerPage - 1) / partsPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	var nav []adapter.InlineButton
	if page > 1 {
		nav = append(nav, btn("⬅️ Oldingi", fmt.Sprintf("parts:%d:%d:%d", contentID, season, page-1)))
	}
	if page < totalPages {
		nav = append(nav, btn("Keyingi ➡️", fmt.Sprintf("parts:%d:%d:%d", contentID, season, page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, []adapter.InlineButton{
		btn("📄 Ro'yxat", "content:"+strconv.FormatInt(contentID, 10)),
		btn("⬅️ Orqaga", "back:menu"),
	})
	return rows
}

func seasonsKeyboard(contentID int64, seasons []int) [][]adapter.InlineButton {
	var rows [][]adapter.InlineButton
	var row []adapter.InlineButton
	for _, season := range seasons {
		row = append(row, btn(
			fmt.Sprintf("%d-fasl", season),
			fmt.Sprintf("season:%d:%d", contentID, season),
		))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, []adapter.InlineButton{
		btn("📄 Ro'yxat", "content:"+strconv.FormatInt(contentID, 10)),
		btn("⬅️ Orqaga", "back:menu"),
	})
	return rows
}

func adminMenuKeyboard() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{btn("➕ Kontent qo'shish", "admin:add_content"), btn("➕ Qism qo'shish", "admin:add_part")},
		{btn("🧑‍💻 Kontent (ID)", "admin:edit"), btn("🔒 Majburiy obuna", "admin:forced")},
		{btn("👥 Adminlar", "admin:admins"), btn("📊 Statistika", "admin:stats")},
		{btn("📢 Reklama yuborish", "admin:broadcast"), btn("⚙️ Sozlamalar", "admin:settings")},
	}
}

func adminForcedKeyboard() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{btn("➕ Kanal qo'shish", "admin:forced:add"), btn("➖ Kanal o'chirish", "admin:forced:remove")},
		{btn("📄 Ro'yxat", "admin:forced:list"), btn("⬅️ Orqaga", "back:admin")},
	}
}

func adminAdminsKeyboard() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{btn("➕ Admin qo'shish", "admin:admins:add"), btn("➖ Admin o'chirish", "admin:admins:remove")},
		{btn("📄 Ro'yxat", "admin:admins:list"), btn("⬅️ Orqaga", "back:admin")},
	}
}

func adminSettingsKeyboard() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{btn("Anime", "admin:settings:anime"), btn("Kino", "admin:settings:movie")},
		{btn("Drama", "admin:settings:drama"), btn("⬅️ Orqaga", "back:admin")},
	}
}
