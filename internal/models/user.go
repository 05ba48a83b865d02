package models

import "time"

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"not null" json:"-"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	TelegramChatID *string    `gorm:"uniqueIndex" json:"telegram_chat_id"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	Activities     []Activity `json:"-"`
}

// Linked reports whether the account is bound to a Telegram chat.
func (user *User) Linked() bool {
	return user.TelegramChatID != nil && *user.TelegramChatID != ""
}
