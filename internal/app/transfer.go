package app

import (
	"context"
	"fmt"

	"github.com/Spok95/pocket-hornet/internal/domain/snapshot"
	"github.com/Spok95/pocket-hornet/internal/feedback"
	"github.com/Spok95/pocket-hornet/internal/report"
)

// ExportedSnapshot is an encoded config document and its conventional file name.
type ExportedSnapshot struct {
	Name     string
	Document snapshot.Document
	Data     []byte
}

// ExportSnapshot renders the catalog, roster and costing state. The ledger is not exported.
func (a *App) ExportSnapshot() (ExportedSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out, err := a.exportSnapshot()
	if err != nil {
		return ExportedSnapshot{}, err
	}
	a.cues.Play(feedback.CueDocumentStamped, out.Name)
	return out, nil
}

// ReadSnapshot builds the same document as ExportSnapshot without playing a cue.
func (a *App) ReadSnapshot() (ExportedSnapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exportSnapshot()
}

func (a *App) exportSnapshot() (ExportedSnapshot, error) {
	now := a.now()
	doc := snapshot.Export(a.state(), now)
	data, err := snapshot.Encode(doc)
	if err != nil {
		return ExportedSnapshot{}, err
	}
	a.metrics.SnapshotExports.Inc()
	return ExportedSnapshot{Name: snapshot.FileName(now), Document: doc, Data: data}, nil
}

// RequestImport validates raw and gates applying it. A document that fails
// validation is rejected immediately and the gate is left untouched.
func (a *App) RequestImport(raw []byte) (snapshot.Meta, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	doc, err := snapshot.Validate(raw)
	if err != nil {
		a.metrics.SnapshotImports.WithLabelValues("rejected").Inc()
		a.log.Warn("snapshot rejected", "err", err)
		return snapshot.Meta{}, err
	}
	msg := fmt.Sprintf("Konfiguration vom %s (Version %s) laden? Aktuelle Artikel, Teams und Kosten werden überschrieben.",
		doc.Meta.Date, doc.Meta.Version)
	a.confirm("Konfiguration importieren", msg, true, func(ctx context.Context) error {
		return a.applySnapshot(ctx, doc)
	})
	return doc.Meta, nil
}

// applySnapshot overlays every present payload field in one step and writes all
// portable keys in one batch.
func (a *App) applySnapshot(ctx context.Context, doc snapshot.Document) error {
	next := doc.Payload.Merge(a.state())
	a.catalog.Replace(next.Products, next.Categories)
	a.roster.Replace(next.Teams, next.PaymentMethods)
	a.costing = next.Costing
	a.refreshGauges()
	a.metrics.SnapshotImports.WithLabelValues("applied").Inc()
	a.cues.Play(feedback.CueNotification, "import")
	a.log.Info("snapshot applied", "version", doc.Meta.Version, "date", doc.Meta.Date,
		"products", len(next.Products), "teams", len(next.Teams))
	return a.persist(ctx, snapshotKeys...)
}

func (a *App) state() snapshot.State {
	return snapshot.State{
		Products:       a.catalog.Products(),
		Categories:     a.catalog.Categories(),
		Teams:          a.roster.Teams(),
		PaymentMethods: a.roster.PaymentMethods(),
		Costing:        a.costing,
	}
}

// Journal renders the full ledger, voids included, as an XLSX workbook.
func (a *App) Journal() (name string, data []byte, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	name, data, err = a.journal()
	if err != nil {
		return "", nil, err
	}
	a.cues.Play(feedback.CueDocumentStamped, name)
	return name, data, nil
}

// ReadJournal builds the same workbook as Journal without playing a cue.
func (a *App) ReadJournal() (name string, data []byte, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.journal()
}

func (a *App) journal() (string, []byte, error) {
	data, err := report.Journal(a.ledger.Events(), a.ledger.Summary(a.costing), a.loc)
	if err != nil {
		return "", nil, err
	}
	return report.JournalFileName(a.now().In(a.loc)), data, nil
}
