package bot

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/Spok95/pocket-hornet/internal/apperr"
)

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, clearedMarkup()))
}

// downloadTelegramFile fetches an uploaded file by its FileID.
func (b *Bot) downloadTelegramFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	resp, err := b.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// reportErr tells the operator what went wrong, phrased by error kind.
func (b *Bot) reportErr(chatID int64, err error) {
	var text string
	switch apperr.KindOf(err) {
	case apperr.Validation:
		text = "❌ Ungültige Eingabe: " + err.Error()
	case apperr.Precondition:
		text = "ℹ️ Nicht möglich: " + err.Error()
	case apperr.Persistence:
		text = "⚠️ Änderung übernommen, aber nicht gespeichert: " + err.Error()
	default:
		text = "❌ Fehler: " + err.Error()
		b.log.Error("operation failed", "err", err)
	}
	b.reply(chatID, text)
}

// parseAmount accepts "12.50" and "12,50".
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

// badge marks active entries.
func badge(active bool) string {
	if active {
		return "🟢"
	}
	return "🚫"
}

// splitArgs splits command arguments into the first word and the rest.
func splitArgs(s string) (string, string) {
	s = strings.TrimSpace(s)
	first, rest, _ := strings.Cut(s, " ")
	return first, strings.TrimSpace(rest)
}
