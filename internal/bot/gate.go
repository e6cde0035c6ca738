package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/pocket-hornet/internal/dialog"
)

// shownRequest is the message that currently renders a gate request.
type shownRequest struct {
	seq    uint64
	chatID int64
	msgID  int
	text   string
}

// showPending renders the pending gate request: confirms get an inline keyboard,
// prompts a forced reply whose answer arrives through handleText. The message of
// a replaced request loses its buttons.
func (b *Bot) showPending(chatID int64) {
	req, ok := b.app.Pending()
	if !ok {
		return
	}
	if b.shown != nil && b.shown.seq != req.Seq {
		b.retire(b.shown.seq, "(ersetzt)")
	}

	text := fmt.Sprintf("%s\n\n%s", req.Title, req.Message)
	m := tgbotapi.NewMessage(chatID, text)
	switch req.Mode {
	case dialog.ModeConfirm:
		m.ReplyMarkup = confirmKeyboard(req.Seq, req.Danger)
	case dialog.ModePrompt:
		if req.Initial != "" {
			m.Text += fmt.Sprintf("\n(aktuell: %s)", req.Initial)
		}
		m.ReplyMarkup = cancelKeyboard(req.Seq)
	}
	sent, err := b.api.Send(m)
	if err != nil {
		b.log.Error("send failed", "err", err)
		return
	}
	b.shown = &shownRequest{seq: req.Seq, chatID: chatID, msgID: sent.MessageID, text: m.Text}
}

// retire clears the buttons of the message showing request seq.
func (b *Bot) retire(seq uint64, note string) {
	s := b.shown
	if s == nil || s.seq != seq {
		return
	}
	b.shown = nil
	text := s.text
	if note != "" {
		text += "\n\n" + note
	}
	b.editTextAndClear(s.chatID, s.msgID, text)
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	action, seq, ok := parseGateData(cb.Data)
	if !ok {
		_ = b.answerCallback(cb, "Unbekannte Aktion", false)
		return
	}

	b.editTextAndClear(chatID, msgID, cb.Message.Text)
	if b.shown != nil && b.shown.msgID == msgID {
		b.shown = nil
	}
	switch action {
	case gateAccept:
		if err := b.app.Accept(ctx, seq, ""); err != nil {
			_ = b.answerCallback(cb, "Nicht ausgeführt", false)
			b.reportErr(chatID, err)
			return
		}
		_ = b.answerCallback(cb, "", false)
		b.reply(chatID, "Erledigt.")
	case gateCancel:
		if err := b.app.Cancel(seq); err != nil {
			_ = b.answerCallback(cb, "Nicht mehr aktuell", false)
			return
		}
		_ = b.answerCallback(cb, "Abgebrochen", false)
	}
}

// answerPrompt feeds free text to a pending prompt. It reports whether one was pending.
func (b *Bot) answerPrompt(ctx context.Context, chatID int64, text string) bool {
	req, ok := b.app.Pending()
	if !ok || req.Mode != dialog.ModePrompt {
		return false
	}
	b.retire(req.Seq, "")
	if err := b.app.Accept(ctx, req.Seq, text); err != nil {
		b.reportErr(chatID, err)
		return true
	}
	b.reply(chatID, "Gespeichert.")
	return true
}

// dropPrompt cancels a pending prompt, if any, so the next text is not taken as its answer.
func (b *Bot) dropPrompt() {
	req, ok := b.app.Pending()
	if !ok || req.Mode != dialog.ModePrompt {
		return
	}
	b.retire(req.Seq, "(abgebrochen)")
	_ = b.app.Cancel(req.Seq)
}
