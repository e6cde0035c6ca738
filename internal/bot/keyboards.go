package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Gate buttons carry the request number: gate:ok:<seq>, gate:cancel:<seq>.
const (
	gateAccept = "ok"
	gateCancel = "cancel"
)

func gateData(action string, seq uint64) string {
	return fmt.Sprintf("gate:%s:%d", action, seq)
}

func parseGateData(data string) (action string, seq uint64, ok bool) {
	rest, found := strings.CutPrefix(data, "gate:")
	if !found {
		return "", 0, false
	}
	action, num, found := strings.Cut(rest, ":")
	if !found || (action != gateAccept && action != gateCancel) {
		return "", 0, false
	}
	seq, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return action, seq, true
}

// Reply keyboard labels, mapped to commands in handleText.
const (
	btnCash    = "💶 Kasse"
	btnUndo    = "↩️ Rückgängig"
	btnExport  = "📤 Export"
	btnJournal = "📒 Journal"
	btnCatalog = "🛒 Artikel"
	btnTeams   = "👥 Teams"
)

func confirmKeyboard(seq uint64, danger bool) tgbotapi.InlineKeyboardMarkup {
	ok := "✅ Bestätigen"
	if danger {
		ok = "⚠️ Ja, ausführen"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(ok, gateData(gateAccept, seq)),
			tgbotapi.NewInlineKeyboardButtonData("✖️ Abbrechen", gateData(gateCancel, seq)),
		),
	)
}

func cancelKeyboard(seq uint64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Abbrechen", gateData(gateCancel, seq)),
		),
	)
}

func isReplyButton(text string) bool {
	switch text {
	case btnCash, btnUndo, btnExport, btnJournal, btnCatalog, btnTeams:
		return true
	}
	return false
}

// adminReplyKeyboard is the bottom panel of the admin chat.
func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnCash), tgbotapi.NewKeyboardButton(btnUndo)},
			{tgbotapi.NewKeyboardButton(btnCatalog), tgbotapi.NewKeyboardButton(btnTeams)},
			{tgbotapi.NewKeyboardButton(btnExport), tgbotapi.NewKeyboardButton(btnJournal)},
		},
	}
}

func clearedMarkup() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}
