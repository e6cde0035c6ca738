// Package bot is the Telegram operator surface: commands map to application
// operations and the interaction gate is rendered as inline keyboards.
package bot

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/pocket-hornet/internal/app"
	"github.com/Spok95/pocket-hornet/internal/infra/blob"
)

// API is the subset of *tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Bot struct {
	api       API
	log       *slog.Logger
	app       *app.App
	adminChat int64
	// transfer is optional; exports are copied there when set.
	transfer blob.Store
	http     *http.Client
	// shown is the message rendering the pending gate request, if any.
	shown *shownRequest
}

func New(api API, log *slog.Logger, a *app.App, adminChatID int64, transfer blob.Store) *Bot {
	return &Bot{
		api:       api,
		log:       log,
		app:       a,
		adminChat: adminChatID,
		transfer:  transfer,
		http:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		if !b.allowed(upd.Message.Chat.ID) {
			b.log.Warn("message from foreign chat ignored", "chat_id", upd.Message.Chat.ID)
			return
		}
		b.onMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil:
		if !b.allowed(upd.CallbackQuery.Message.Chat.ID) {
			return
		}
		b.onCallback(ctx, upd.CallbackQuery)
	}
}

// allowed limits the bot to the admin chat. Without one configured every chat is served.
func (b *Bot) allowed(chatID int64) bool {
	return b.adminChat == 0 || chatID == b.adminChat
}

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.Document != nil:
		b.handleDocument(ctx, msg)
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	default:
		b.handleText(ctx, msg)
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}
