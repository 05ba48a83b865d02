package bot

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	updateTimeoutSeconds = 30
	// must exceed the long-poll timeout or GetUpdates would time itself out
	httpClientTimeout = 40 * time.Second
)

// Bot owns the Telegram connection: the long-poll update loop feeding the
// account-link conversation, and the shared API client used by the
// Notifier. It is constructed once at startup and torn down at shutdown;
// both steps are idempotent.
type Bot struct {
	api          *tgbotapi.BotAPI
	conversation *Conversation

	mu   sync.Mutex
	done chan struct{}
}

func New(token string, conversation *Conversation) (*Bot, error) {
	client := &http.Client{Timeout: httpClientTimeout}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	return &Bot{api: api, conversation: conversation}, nil
}

// Sender exposes the shared API client for the Notifier.
func (bot *Bot) Sender() *tgbotapi.BotAPI {
	return bot.api
}

// Start launches the update loop. A second Start is a no-op.
func (bot *Bot) Start() {
	bot.mu.Lock()
	defer bot.mu.Unlock()

	if bot.done != nil {
		return
	}
	bot.done = make(chan struct{})

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = updateTimeoutSeconds
	updates := bot.api.GetUpdatesChan(updateConfig)

	go bot.loop(updates, bot.done)
	log.Printf("bot: @%s listening for updates", bot.api.Self.UserName)
}

// Stop ends the update loop and waits for it to drain. Safe to call
// repeatedly and before Start.
func (bot *Bot) Stop() {
	bot.mu.Lock()
	done := bot.done
	bot.done = nil
	bot.mu.Unlock()

	if done == nil {
		return
	}
	bot.api.StopReceivingUpdates()
	<-done
}

func (bot *Bot) loop(updates tgbotapi.UpdatesChannel, done chan struct{}) {
	defer close(done)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		bot.handleMessage(update.Message)
	}
}

func (bot *Bot) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	reply := bot.conversation.HandleMessage(chatID, message.Text)
	if reply == "" {
		return
	}

	outgoing := tgbotapi.NewMessage(chatID, reply)
	if bot.conversation.AwaitingInput(chatID) {
		// hide the command keyboard while the user types credentials
		outgoing.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	} else {
		outgoing.ReplyMarkup = mainKeyboard()
	}

	if _, err := bot.api.Send(outgoing); err != nil {
		log.Printf("bot: reply to chat %d failed: %v", chatID, err)
	}
}
