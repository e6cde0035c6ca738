package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Spok95/pocket-hornet/internal/apperr"
)

// Export builds a document from s. Empty collections are written as [] so that
// an importing instance clears them instead of keeping its own.
func Export(s State, now time.Time) Document {
	cfg := s.Costing
	return Document{
		Meta: Meta{
			Type:       TypeMarker,
			Version:    FormatVersion,
			Date:       now.UTC().Format(dateLayout),
			ExportedBy: ExportedBy,
		},
		Payload: Payload{
			Products:       nonNil(s.Products),
			Teams:          nonNil(s.Teams),
			PaymentMethods: nonNil(s.PaymentMethods),
			Categories:     nonNil(s.Categories),
			Costing:        &cfg,
		},
	}
}

// Encode renders the document as indented JSON with prices and costs as numbers.
func Encode(doc Document) ([]byte, error) {
	raw, err := json.MarshalIndent(toWire(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// FileName is the conventional export file name for a document written at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("HORNET_CONFIG_%s.json", t.Format("2006-01-02"))
}

type envelope struct {
	Meta    *Meta           `json:"meta"`
	Payload json.RawMessage `json:"payload"`
}

type rawPayload struct {
	Products       json.RawMessage `json:"products"`
	Teams          json.RawMessage `json:"teams"`
	PaymentMethods json.RawMessage `json:"paymentMethods"`
	Categories     json.RawMessage `json:"categories"`
	Costing        json.RawMessage `json:"lootConfig"`
}

// Validate parses raw and checks the type marker and payload presence. Unknown
// fields are ignored and each payload field may be missing; a present field that
// cannot be decoded rejects the whole document.
func Validate(raw []byte) (Document, error) {
	const op = "snapshot.validate"
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Document{}, apperr.New(apperr.Validation, op, fmt.Errorf("not a config document: %w", err))
	}
	if env.Meta == nil || env.Meta.Type != TypeMarker {
		return Document{}, apperr.Validationf(op, "missing or wrong type marker, want %q", TypeMarker)
	}
	if isAbsent(env.Payload) {
		return Document{}, apperr.Validationf(op, "payload missing")
	}
	var rp rawPayload
	if err := json.Unmarshal(env.Payload, &rp); err != nil {
		return Document{}, apperr.New(apperr.Validation, op, fmt.Errorf("payload: %w", err))
	}

	doc := Document{Meta: *env.Meta}
	fields := []struct {
		name string
		raw  json.RawMessage
		dst  any
	}{
		{"products", rp.Products, &doc.Payload.Products},
		{"teams", rp.Teams, &doc.Payload.Teams},
		{"paymentMethods", rp.PaymentMethods, &doc.Payload.PaymentMethods},
		{"categories", rp.Categories, &doc.Payload.Categories},
		{"lootConfig", rp.Costing, &doc.Payload.Costing},
	}
	for _, f := range fields {
		if isAbsent(f.raw) {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return Document{}, apperr.New(apperr.Validation, op, fmt.Errorf("payload.%s: %w", f.name, err))
		}
	}
	return doc, nil
}

// Merge overlays the present payload fields on current.
func (p Payload) Merge(current State) State {
	next := current
	if p.Products != nil {
		next.Products = p.Products
	}
	if p.Categories != nil {
		next.Categories = p.Categories
	}
	if p.Teams != nil {
		next.Teams = p.Teams
	}
	if p.PaymentMethods != nil {
		next.PaymentMethods = p.PaymentMethods
	}
	if p.Costing != nil {
		next.Costing = *p.Costing
	}
	return next
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
