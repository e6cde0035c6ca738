package feedback

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var cueBadges = map[Cue]string{
	CueItemAdded:         "➕",
	CueItemRemoved:       "🗑",
	CuePaymentConfirmed:  "💶",
	CueDocumentStamped:   "📄",
	CueOperationReverted: "↩️",
	CueNotification:      "🔔",
}

// DefaultNotifyCues are the cues worth a chat message.
var DefaultNotifyCues = []Cue{CueOperationReverted, CueDocumentStamped, CueNotification}

// Telegram posts selected cues to the admin chat in the background.
type Telegram struct {
	api    Sender
	chatID int64
	log    *slog.Logger
	cues   map[Cue]bool
	done   func() // test hook, called after each send attempt
}

func NewTelegram(api Sender, chatID int64, log *slog.Logger, cues ...Cue) *Telegram {
	if len(cues) == 0 {
		cues = DefaultNotifyCues
	}
	set := make(map[Cue]bool, len(cues))
	for _, c := range cues {
		set[c] = true
	}
	return &Telegram{api: api, chatID: chatID, log: log, cues: set, done: func() {}}
}

func (t *Telegram) Play(cue Cue, detail string) {
	if !t.cues[cue] || t.chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, fmt.Sprintf("%s %s", cueBadges[cue], detail))
	go func() {
		defer t.done()
		if _, err := t.api.Send(msg); err != nil {
			t.log.Warn("cue notification failed", "cue", string(cue), "err", err)
		}
	}()
}
