package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/plantracker/plantracker/internal/models"
	"github.com/plantracker/plantracker/internal/services"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateAwaitingEmail
	stateAwaitingPassword
)

// session is the per-chat scratch state of an account-link conversation.
// Sessions live in process memory only; losing them on restart just means
// the user starts the link flow over.
type session struct {
	state sessionState
	email string
}

type UserDirectory interface {
	FindByNormalizedEmail(email string) (models.User, error)
	FindByTelegramChatID(chatID string) (models.User, error)
	SetTelegramChatID(userID uint, chatID *string) error
}

type Authenticator interface {
	Authenticate(email string, password string) (models.User, error)
}

type RunningActivityFinder interface {
	FindRunningByUser(userID uint) (models.Activity, error)
}

// Conversation drives the account-link state machine for every chat that
// talks to the bot. Messages from one chat arrive strictly in order (the
// bot runs a single update loop); the mutex only guards the session map
// against the watcher-free concurrent access pattern of future transports.
type Conversation struct {
	users      UserDirectory
	auth       Authenticator
	activities RunningActivityFinder
	now        func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session
}

func NewConversation(users UserDirectory, auth Authenticator, activities RunningActivityFinder) *Conversation {
	return &Conversation{
		users:      users,
		auth:       auth,
		activities: activities,
		now:        time.Now,
		sessions:   make(map[int64]*session),
	}
}

// WithClock overrides the conversation clock for deterministic tests.
func (conversation *Conversation) WithClock(now func() time.Time) *Conversation {
	conversation.now = now
	return conversation
}

// HandleMessage processes one inbound message and returns the reply text.
// Commands and their keyboard-button aliases work from any state; any
// other text is interpreted by the link state machine.
func (conversation *Conversation) HandleMessage(chatID int64, text string) string {
	trimmed := strings.TrimSpace(text)

	switch trimmed {
	case "/start", btnStart:
		return textWelcome
	case "/help", btnHelp:
		return textHelp
	case "/link", btnLink:
		return conversation.beginLink(chatID)
	case "/unlink", btnUnlink:
		return conversation.unlink(chatID)
	case "/current", btnCurrent:
		return conversation.currentActivity(chatID)
	case "/cancel":
		conversation.reset(chatID)
		return textLinkCancelled
	}

	switch conversation.state(chatID) {
	case stateAwaitingEmail:
		return conversation.collectEmail(chatID, trimmed)
	case stateAwaitingPassword:
		return conversation.collectPassword(chatID, trimmed)
	default:
		// nothing pending for this chat, ignore free text
		return ""
	}
}

// AwaitingInput reports whether the chat is mid-link, so the transport
// can hide the command keyboard while the user types credentials.
func (conversation *Conversation) AwaitingInput(chatID int64) bool {
	return conversation.state(chatID) != stateIdle
}

func (conversation *Conversation) beginLink(chatID int64) string {
	conversation.mu.Lock()
	defer conversation.mu.Unlock()
	conversation.sessions[chatID] = &session{state: stateAwaitingEmail}
	return textAskEmail
}

func (conversation *Conversation) collectEmail(chatID int64, email string) string {
	user, err := conversation.users.FindByNormalizedEmail(strings.ToLower(email))
	if err != nil {
		// lookup miss keeps the session recoverable: stay and re-prompt
		return textUserNotFound
	}

	if user.Linked() {
		conversation.reset(chatID)
		return textAlreadyLinked
	}

	conversation.mu.Lock()
	defer conversation.mu.Unlock()
	conversation.sessions[chatID] = &session{state: stateAwaitingPassword, email: email}
	return textAskPassword
}

func (conversation *Conversation) collectPassword(chatID int64, password string) string {
	email := conversation.pendingEmail(chatID)
	if email == "" {
		conversation.reset(chatID)
		return textInternalError
	}

	user, err := conversation.auth.Authenticate(email, password)
	if err != nil {
		return textInvalidPassword
	}

	chat := strconv.FormatInt(chatID, 10)
	if err := conversation.users.SetTelegramChatID(user.ID, &chat); err != nil {
		log.Printf("bot: link chat %d to user %d failed: %v", chatID, user.ID, err)
		conversation.reset(chatID)
		return textInternalError
	}

	conversation.reset(chatID)
	return textLinked
}

func (conversation *Conversation) unlink(chatID int64) string {
	user, err := conversation.users.FindByTelegramChatID(strconv.FormatInt(chatID, 10))
	if err != nil {
		return textNotLinked
	}

	if err := conversation.users.SetTelegramChatID(user.ID, nil); err != nil {
		log.Printf("bot: unlink chat %d failed: %v", chatID, err)
		return textInternalError
	}
	return textUnlinked
}

func (conversation *Conversation) currentActivity(chatID int64) string {
	user, err := conversation.users.FindByTelegramChatID(strconv.FormatInt(chatID, 10))
	if err != nil {
		return textLinkFirst
	}

	activity, err := conversation.activities.FindRunningByUser(user.ID)
	if err != nil {
		return textNoRunningTimer
	}

	// report-only read: the live elapsed time is computed, never settled
	// back into the record
	total := activity.ElapsedSeconds(conversation.now())
	return fmt.Sprintf("Current activity: %s\nTime: %s\nStatus: Running", activity.Title, services.FormatDuration(total))
}

func (conversation *Conversation) state(chatID int64) sessionState {
	conversation.mu.Lock()
	defer conversation.mu.Unlock()
	if current, ok := conversation.sessions[chatID]; ok {
		return current.state
	}
	return stateIdle
}

func (conversation *Conversation) pendingEmail(chatID int64) string {
	conversation.mu.Lock()
	defer conversation.mu.Unlock()
	if current, ok := conversation.sessions[chatID]; ok {
		return current.email
	}
	return ""
}

func (conversation *Conversation) reset(chatID int64) {
	conversation.mu.Lock()
	defer conversation.mu.Unlock()
	delete(conversation.sessions, chatID)
}
