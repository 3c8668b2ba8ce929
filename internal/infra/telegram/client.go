// File: internal/infra/telegram/client.go
package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-cinehub-bot/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.TelegramClient = (*Client)(nil)

// Client implements adapter.TelegramClient on top of tgbotapi. Polling is
// done with explicit GetUpdates calls rather than the library's update
// channel: the engine owns the offset, not the transport.
type Client struct {
	bot *tgbotapi.BotAPI
	log *zerolog.Logger
}

func NewClient(token string, logger *zerolog.Logger) (*Client, error) {
	if token == "" {
		return nil, errors.New("bot token is empty")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	logger.Info().Str("username", bot.Self.UserName).Msg("telegram bot authorized")
	return &Client{bot: bot, log: logger}, nil
}

// Username returns the authorized bot's username (without the @).
func (c *Client) Username() string { return c.bot.Self.UserName }

func (c *Client) FetchUpdates(ctx context.Context, offset int64, timeoutSec, limit int) ([]adapter.Update, error) {
	cfg := tgbotapi.UpdateConfig{
		Offset:  int(offset),
		Limit:   limit,
		Timeout: timeoutSec,
		AllowedUpdates: []string{
			tgbotapi.UpdateTypeMessage,
			tgbotapi.UpdateTypeCallbackQuery,
		},
	}

	raw, err := c.bot.GetUpdates(cfg)
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}

	updates := make([]adapter.Update, 0, len(raw))
	for _, u := range raw {
		updates = append(updates, convertUpdate(u))
	}
	return updates, nil
}

func convertUpdate(u tgbotapi.Update) adapter.Update {
	out := adapter.Update{ID: int64(u.UpdateID)}

	if m := u.Message; m != nil {
		msg := &adapter.Message{ID: m.MessageID, Text: m.Text}
		if m.From != nil {
			msg.From = &adapter.Sender{ID: m.From.ID, Username: m.From.UserName}
		}
		if m.Chat != nil {
			msg.ChatID = m.Chat.ID
		}
		out.Message = msg
		return out
	}

	if q := u.CallbackQuery; q != nil {
		cb := &adapter.Callback{ID: q.ID, Data: q.Data}
		if q.From != nil {
			cb.From = &adapter.Sender{ID: q.From.ID, Username: q.From.UserName}
		}
		if q.Message != nil {
			cb.MessageID = q.Message.MessageID
			if q.Message.Chat != nil {
				cb.ChatID = q.Message.Chat.ID
			}
		}
		out.Callback = cb
	}
	return out
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, buttons [][]adapter.InlineButton) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if kb := toMarkup(buttons); kb != nil {
		msg.ReplyMarkup = *kb
	}
	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, buttons [][]adapter.InlineButton) (int, error) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	if kb := toMarkup(buttons); kb != nil {
		photo.ReplyMarkup = *kb
	}
	sent, err := c.bot.Send(photo)
	if err != nil {
		return 0, fmt.Errorf("send photo: %w", err)
	}
	return sent.MessageID, nil
}

func (c *Client) CopyMessage(ctx context.Context, chatID, fromChatID int64, messageID int) (int, error) {
	copied, err := c.bot.CopyMessage(tgbotapi.NewCopyMessage(chatID, fromChatID, messageID))
	if err != nil {
		return 0, fmt.Errorf("copy message: %w", err)
	}
	return copied.MessageID, nil
}

func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, buttons [][]adapter.InlineButton) error {
	var cfg tgbotapi.EditMessageTextConfig
	if kb := toMarkup(buttons); kb != nil {
		cfg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		cfg = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	if _, err := c.bot.Request(cfg); err != nil {
		return fmt.Errorf("edit message text: %w", err)
	}
	return nil
}

func (c *Client) EditMessageCaption(ctx context.Context, chatID int64, messageID int, caption string, buttons [][]adapter.InlineButton) error {
	cfg := tgbotapi.EditMessageCaptionConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:      chatID,
			MessageID:   messageID,
			ReplyMarkup: toMarkup(buttons),
		},
		Caption: caption,
	}
	if _, err := c.bot.Request(cfg); err != nil {
		return fmt.Errorf("edit message caption: %w", err)
	}
	return nil
}

func (c *Client) EditMessageReplyMarkup(ctx context.Context, chatID int64, messageID int, buttons [][]adapter.InlineButton) error {
	kb := toMarkup(buttons)
	if kb == nil {
		kb = &tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	}
	if _, err := c.bot.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, *kb)); err != nil {
		return fmt.Errorf("edit reply markup: %w", err)
	}
	return nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if _, err := c.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	cfg := tgbotapi.CallbackConfig{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	}
	if _, err := c.bot.Request(cfg); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func (c *Client) ChatMemberStatus(ctx context.Context, channelID, userID int64) (string, error) {
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: channelID,
			UserID: userID,
		},
	})
	if err != nil {
		return "", fmt.Errorf("get chat member: %w", err)
	}
	return member.Status, nil
}

func toMarkup(buttons [][]adapter.InlineButton) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		out := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				out = append(out, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			out = append(out, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, out)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
