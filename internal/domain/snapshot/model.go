// Package snapshot converts the catalog, roster and costing state to and from the
// portable config document. It owns no state.
package snapshot

import (
	"time"

	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/costing"
	"github.com/Spok95/pocket-hornet/internal/domain/roster"
)

const (
	TypeMarker    = "POCKET_HORNET_CONFIG"
	FormatVersion = "2.4"
	ExportedBy    = "POCKET_HORNET_ADMIN"

	dateLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Meta struct {
	Type       string `json:"type"`
	Version    string `json:"version"`
	Date       string `json:"date"`
	ExportedBy string `json:"exportedBy,omitempty"`
}

// Time parses Date; documents with an unreadable date are still importable.
func (m Meta) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, m.Date)
	return t, err == nil
}

// Payload fields are independently optional: nil means "absent, keep current".
type Payload struct {
	Products       []catalog.Product      `json:"products"`
	Teams          []roster.Team          `json:"teams"`
	PaymentMethods []roster.PaymentMethod `json:"paymentMethods"`
	Categories     []string               `json:"categories"`
	Costing        *costing.Config        `json:"lootConfig"`
}

type Document struct {
	Meta    Meta    `json:"meta"`
	Payload Payload `json:"payload"`
}

// State is the portable part of the application state.
type State struct {
	Products       []catalog.Product
	Categories     []string
	Teams          []roster.Team
	PaymentMethods []roster.PaymentMethod
	Costing        costing.Config
}
