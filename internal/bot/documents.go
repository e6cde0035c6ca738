package bot

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/pocket-hornet/internal/infra/blob"
)

// Transfer store prefixes.
const (
	configPrefix  = "config/"
	journalPrefix = "journal/"
)

// maxImportBytes caps uploaded config documents.
const maxImportBytes = 5 << 20

// handleDocument downloads an uploaded config document and gates its import.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".json") {
		b.reply(chatID, "Bitte eine JSON-Konfigurationsdatei senden.")
		return
	}
	if doc.FileSize > maxImportBytes {
		b.reply(chatID, "Datei ist zu groß.")
		return
	}
	data, err := b.downloadTelegramFile(doc.FileID)
	if err != nil {
		b.log.Error("config download failed", "file", doc.FileName, "err", err)
		b.reply(chatID, "Datei konnte nicht geladen werden.")
		return
	}
	b.requestImport(chatID, data)
}

func (b *Bot) requestImport(chatID int64, data []byte) {
	if _, err := b.app.RequestImport(data); err != nil {
		b.reportErr(chatID, err)
		return
	}
	b.showPending(chatID)
}

func (b *Bot) sendExport(ctx context.Context, chatID int64) {
	out, err := b.app.ExportSnapshot()
	if err != nil {
		b.reportErr(chatID, err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: out.Name, Bytes: out.Data})
	doc.Caption = fmt.Sprintf("Konfiguration %s, Version %s", out.Document.Meta.Date, out.Document.Meta.Version)
	b.send(doc)
	b.copyToTransfer(ctx, chatID, configPrefix+out.Name, out.Data)
}

func (b *Bot) sendJournal(ctx context.Context, chatID int64) {
	name, data, err := b.app.Journal()
	if err != nil {
		b.reportErr(chatID, err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = "Journal mit allen Buchungen und Stornos."
	b.send(doc)
	b.copyToTransfer(ctx, chatID, journalPrefix+name, data)
}

func (b *Bot) copyToTransfer(ctx context.Context, chatID int64, key string, data []byte) {
	if b.transfer == nil {
		return
	}
	if err := b.transfer.Put(ctx, key, data); err != nil {
		b.log.Error("transfer upload failed", "key", key, "err", err)
		b.reply(chatID, "⚠️ Kopie im Transferspeicher fehlgeschlagen.")
	}
}

func (b *Bot) showTransfers(ctx context.Context, chatID int64) {
	if b.transfer == nil {
		b.reply(chatID, "Kein Transferspeicher konfiguriert.")
		return
	}
	infos, err := b.transfer.List(ctx, configPrefix)
	if err != nil {
		b.log.Error("transfer list failed", "err", err)
		b.reply(chatID, "Transferspeicher nicht erreichbar.")
		return
	}
	if len(infos) == 0 {
		b.reply(chatID, "Keine Konfigurationen im Transferspeicher.")
		return
	}
	var sb strings.Builder
	for _, in := range infos {
		fmt.Fprintf(&sb, "%s (%d B)\n", path.Base(in.Key), in.Size)
	}
	sb.WriteString("\n/pull <datei> lädt eine davon.")
	b.reply(chatID, sb.String())
}

// pullTransfer gates the import of a config stored in the transfer store.
func (b *Bot) pullTransfer(ctx context.Context, chatID int64, name string) {
	if b.transfer == nil {
		b.reply(chatID, "Kein Transferspeicher konfiguriert.")
		return
	}
	name = path.Base(strings.TrimSpace(name))
	if name == "." || name == "/" {
		b.reply(chatID, "Dateiname fehlt.")
		return
	}
	data, err := b.transfer.Get(ctx, configPrefix+name)
	if errors.Is(err, blob.ErrNotFound) {
		b.reply(chatID, "Datei nicht gefunden.")
		return
	}
	if err != nil {
		b.log.Error("transfer download failed", "name", name, "err", err)
		b.reply(chatID, "Transferspeicher nicht erreichbar.")
		return
	}
	b.requestImport(chatID, data)
}
