package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Spok95/pocket-hornet/internal/app"
	"github.com/Spok95/pocket-hornet/internal/domain/ledger"
)

// Source is the read side of the application container. Reads play no cues.
type Source interface {
	ReadSnapshot() (app.ExportedSnapshot, error)
	ReadJournal() (string, []byte, error)
	Summary() ledger.Summary
}

type Handler struct {
	log *slog.Logger
	src Source
}

func NewHandler(log *slog.Logger, src Source) *Handler {
	return &Handler{log: log, src: src}
}

// Snapshot downloads the current config document.
func (h *Handler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	out, err := h.src.ReadSnapshot()
	if err != nil {
		h.log.Error("snapshot export failed", "err", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	attachment(w, "application/json", out.Name)
	_, _ = w.Write(out.Data)
}

// Journal downloads the ledger workbook.
func (h *Handler) Journal(w http.ResponseWriter, _ *http.Request) {
	name, data, err := h.src.ReadJournal()
	if err != nil {
		h.log.Error("journal export failed", "err", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	attachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name)
	_, _ = w.Write(data)
}

func (h *Handler) Summary(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.src.Summary()); err != nil {
		h.log.Warn("summary write failed", "err", err)
	}
}

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
}
