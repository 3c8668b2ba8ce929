package model

import (
	"time"

	"github.com/google/uuid"

	"telegram-cinehub-bot/internal/domain"
)

// User is a domain entity representing a Telegram user known to the bot.
type User struct {
	ID           string
	TelegramID   int64
	Username     string
	RegisteredAt time.Time
	LastActiveAt time.Time
}

func NewUser(id string, tgID int64, username string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		TelegramID:   tgID,
		Username:     username,
		RegisteredAt: now,
		LastActiveAt: now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }
