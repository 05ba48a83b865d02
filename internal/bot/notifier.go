package bot

import (
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/plantracker/plantracker/internal/models"
)

type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type notifierUserLookup interface {
	FindByID(userID uint) (models.User, error)
}

// Notifier pushes best-effort messages to a user's linked Telegram chat.
// It never returns an error: the timer engine and the watcher must not
// fail their own work over a notification problem, so every failure mode
// collapses to a logged false.
type Notifier struct {
	sender messageSender
	users  notifierUserLookup
}

func NewNotifier(sender messageSender, users notifierUserLookup) *Notifier {
	return &Notifier{sender: sender, users: users}
}

// Notify sends the message to the user's linked chat. It returns false
// when the user has no linked chat (the common, expected case) or when
// delivery fails; delivery failures are logged, never propagated.
func (notifier *Notifier) Notify(userID uint, message string) bool {
	if notifier == nil || notifier.sender == nil {
		return false
	}

	user, err := notifier.users.FindByID(userID)
	if err != nil {
		log.Printf("notifier: lookup user %d failed: %v", userID, err)
		return false
	}
	if !user.Linked() {
		return false
	}

	chatID, err := strconv.ParseInt(*user.TelegramChatID, 10, 64)
	if err != nil {
		log.Printf("notifier: user %d has malformed chat id %q", userID, *user.TelegramChatID)
		return false
	}

	if _, err := notifier.sender.Send(tgbotapi.NewMessage(chatID, message)); err != nil {
		log.Printf("notifier: send to chat %d failed: %v", chatID, err)
		return false
	}
	return true
}
