package bot

import (
	"strconv"
	"strings"

	"telegram-cinehub-bot/internal/domain/model"
)

// User-facing texts. The bot speaks Uzbek.
const (
	textWelcome = "Assalomu alaykum! \U0001F44B\n\nBu bot orqali o'zbekcha kino, Drama va animelarni topishingiz mumkin.\nQuyidagi menyudan tanlang."

	textSubRequired = "\U0001F4CC Davom etish uchun quyidagi kanallarga obuna bo'ling.\nSo'ng `✅ Tekshirdim` tugmasini bosing."
	textSubDenied   = "❗️ Avval obuna bo'ling"
	textSubVerified = "✅ Obuna tekshirildi"

	textSearchPrompt = "Qidirish uchun nom yoki kod yuboring:"
	textNoResults    = "Hech narsa topilmadi."
	textResults      = "Natijalar:"
	textLatestList   = "So'nggi yuklanganlar:"
	textTopList      = "Eng ko'p ko'rilganlar:"
	textFavsList     = "Saqlanganlar:"
	textFavsEmpty    = "Saqlanganlar bo'sh."
	textNotFound     = "Topilmadi"
	textNoContent    = "Kontent topilmadi."
	textNoPart       = "Qism topilmadi"
	textPickPart     = "Qismni tanlang:"
	textPickSeason   = "Faslni tanlang:"

	textHelp = "\U0001F4D6 Qo'llanma\n- Qidiruv: nom yoki kod bilan toping\n- Saqlangan: yoqqanlarni tez toping\n- Kontent sahifasida qismni tanlang"

	textAdminMenu            = "Admin panel"
	textAdminOnly            = "Bu bo'lim faqat adminlar uchun."
	textAdminForcedMenu      = "Majburiy obuna sozlamalari:"
	textAdminForcedAdd       = "Kanal ID yuboring. Ixtiyoriy link: `-100123|https://t.me/+abcd`"
	textAdminForcedRemove    = "O'chirish uchun kanal ID yuboring:"
	textAdminForcedListEmpty = "Majburiy obuna kanallari yo'q."
	textAdminAdminsMenu      = "Adminlar sozlamalari:"
	textAdminAdminsAdd       = "Admin ID yuboring:"
	textAdminAdminsRemove    = "O'chirish uchun admin ID yuboring:"
	textAdminAdminsListEmpty = "Adminlar ro'yxati bo'sh."
	textAdminSettingsMenu    = "Kategoriya tanlang:"
	textAdminSettingsEmpty   = "Hech narsa topilmadi."
	textAdminNotImplemented  = "Bu bo'lim hali qo'shilmoqda."
	textNumericIDRequired    = "ID raqam bo'lishi kerak."
	textCannotRemoveSelf     = "O'zingizni o'chira olmaysiz."
	textSaved                = "✅ Saqlandi."

	textBroadcastPrompt = "Reklama matnini yuboring:"
)

const cardTemplate = "\U0001F3AC Nomi: {title}\n\n\U0001F4FA Turi: {type}\n\U0001F4C6 Yili: {year}\n\U0001F30D Davlati: {country}\n\U0001F1FA\U0001F1FF Tili: {language}\n\U0001F39E Janr: {genres}\n{parts_line}"

const accountTemplate = "\U0001F464 Hisobim\nID: {user_id}\nUsername: @{username}\n"

func broadcastDoneText(sent int) string {
	return "Yuborildi: " + strconv.Itoa(sent) + " ta."
}

func formatValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return "—"
	}
	return v
}

// formatCard renders the catalog card shown for a content entry.
func formatCard(c *model.Content) string {
	partsLine := ""
	if c.Type != model.ContentTypeMovie {
		partsLine = "\U0001F3A5 Qismi: " + formatValue(strconv.Itoa(c.PartsTotal)) + "\n"
	}
	return strings.NewReplacer(
		"{title}", formatValue(c.Title),
		"{type}", c.Type.Label(),
		"{year}", formatValue(c.Year),
		"{country}", formatValue(c.Country),
		"{language}", formatValue(c.Language),
		"{genres}", formatValue(c.Genres),
		"{parts_line}", partsLine,
	).Replace(cardTemplate)
}

func formatAccount(userID int64, username string) string {
	if username == "" {
		username = "-"
	}
	return strings.NewReplacer(
		"{user_id}", strconv.FormatInt(userID, 10),
		"{username}", username,
	).Replace(accountTemplate)
}

// partCaption formats the caption applied to a delivered part. Movies only
// carry the part number; series and anime carry season and part.
func partCaption(c *model.Content, season, part int) string {
	if c.Type == model.ContentTypeSeries || c.Type == model.ContentTypeAnime {
		return c.Title + " [" + strconv.Itoa(season) + "-fasl " + strconv.Itoa(part) + "-qism]"
	}
	return c.Title + " [" + strconv.Itoa(part) + "-qism]"
}
