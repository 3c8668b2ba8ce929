// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// Update is one inbound event from the messaging platform. Exactly one of
// Message / Callback is set; both nil means the update kind is unsupported
// and the dispatcher drops it (the cursor still advances).
type Update struct {
	ID       int64
	Message  *Message
	Callback *Callback
}

// Sender identifies the human actor behind an update.
type Sender struct {
	ID       int64
	Username string
}

// Message is a plain inbound chat message.
type Message struct {
	ID     int
	From   *Sender
	ChatID int64
	Text   string
}

// Callback is an inline-button press. MessageID refers to the message the
// button was attached to (0 when Telegram omits it).
type Callback struct {
	ID        string
	From      *Sender
	ChatID    int64
	MessageID int
	Data      string
}

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// Chat member statuses that count as "subscribed" for the gate.
const (
	MemberStatusMember        = "member"
	MemberStatusAdministrator = "administrator"
	MemberStatusCreator       = "creator"
)

// TelegramClient is the outbound transport port. Every method may fail;
// callers are expected to treat failures as a skipped side effect, not a
// reason to abort dispatch. FetchUpdates is the one exception: its error
// drives the ingestion loop's backoff.
type TelegramClient interface {
	FetchUpdates(ctx context.Context, offset int64, timeoutSec, limit int) ([]Update, error)

	SendMessage(ctx context.Context, chatID int64, text string, buttons [][]InlineButton) (int, error)
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string, buttons [][]InlineButton) (int, error)

	// CopyMessage copies a media message from a source channel into chatID
	// and returns the new message id.
	CopyMessage(ctx context.Context, chatID, fromChatID int64, messageID int) (int, error)

	EditMessageText(ctx context.Context, chatID int64, messageID int, text string, buttons [][]InlineButton) error
	EditMessageCaption(ctx context.Context, chatID int64, messageID int, caption string, buttons [][]InlineButton) error
	EditMessageReplyMarkup(ctx context.Context, chatID int64, messageID int, buttons [][]InlineButton) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error

	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error

	// ChatMemberStatus returns the raw membership status of userID in the
	// given channel ("member", "left", "kicked", ...).
	ChatMemberStatus(ctx context.Context, channelID, userID int64) (string, error)
}
