package snapshot

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/pocket-hornet/internal/apperr"
	"github.com/Spok95/pocket-hornet/internal/domain/catalog"
	"github.com/Spok95/pocket-hornet/internal/domain/costing"
	"github.com/Spok95/pocket-hornet/internal/domain/roster"
)

var exportTime = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func sampleState() State {
	return State{
		Products: []catalog.Product{
			{ID: "a", Name: "Paint", Price: decimal.RequireFromString("5.5"), Active: true, Category: "PAINT"},
			{ID: "b", Name: "Cola", Price: decimal.NewFromInt(3), Active: false, Category: catalog.DefaultCategory},
		},
		Categories:     []string{catalog.DefaultCategory, "PAINT"},
		Teams:          []roster.Team{{ID: "t1", Name: "Green Hornets", Active: true}},
		PaymentMethods: roster.DefaultPaymentMethods(),
		Costing: costing.Config{
			Active:           true,
			PaintCostPerUnit: decimal.NewFromInt(2),
			RentCost:         decimal.NewFromInt(10),
			ConsumablesCost:  decimal.RequireFromString("1.25"),
			RentPaid:         true,
		},
	}
}

func TestExportEncodeValidateRoundTrip(t *testing.T) {
	doc := Export(sampleState(), exportTime)
	raw, err := Encode(doc)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"type": "POCKET_HORNET_CONFIG"`)
	assert.Contains(t, string(raw), `"price": 5.5`, "decimals are JSON numbers")
	assert.Contains(t, string(raw), `"paintCostPerBox": 2`)

	got, err := Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, doc.Meta, got.Meta)
	assert.Equal(t, "2026-10-16T09:30:00.000Z", got.Meta.Date)
	ts, ok := got.Meta.Time()
	require.True(t, ok)
	assert.True(t, ts.Equal(exportTime))

	want := sampleState()
	require.Len(t, got.Payload.Products, 2)
	for i, p := range got.Payload.Products {
		assert.Equal(t, want.Products[i].ID, p.ID)
		assert.Equal(t, want.Products[i].Name, p.Name)
		assert.True(t, want.Products[i].Price.Equal(p.Price))
		assert.Equal(t, want.Products[i].Active, p.Active)
		assert.Equal(t, want.Products[i].Category, p.Category)
	}
	assert.Equal(t, want.Categories, got.Payload.Categories)
	assert.Equal(t, want.Teams, got.Payload.Teams)
	assert.Equal(t, want.PaymentMethods, got.Payload.PaymentMethods)
	require.NotNil(t, got.Payload.Costing)
	assert.True(t, got.Payload.Costing.TotalCost().Equal(want.Costing.TotalCost()))
	assert.True(t, got.Payload.Costing.RentPaid)
}

func TestExportWritesEmptyCollections(t *testing.T) {
	raw, err := Encode(Export(State{}, exportTime))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"products": []`)
	assert.Contains(t, string(raw), `"teams": []`)

	doc, err := Validate(raw)
	require.NoError(t, err)
	assert.NotNil(t, doc.Payload.Products)
	assert.Empty(t, doc.Payload.Products)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"array", `[1,2]`},
		{"no meta", `{"payload":{}}`},
		{"wrong marker", `{"meta":{"type":"OTHER"},"payload":{}}`},
		{"empty marker", `{"meta":{"version":"2.4"},"payload":{}}`},
		{"no payload", `{"meta":{"type":"POCKET_HORNET_CONFIG"}}`},
		{"null payload", `{"meta":{"type":"POCKET_HORNET_CONFIG"},"payload":null}`},
		{"payload not object", `{"meta":{"type":"POCKET_HORNET_CONFIG"},"payload":"x"}`},
		{"bad products", `{"meta":{"type":"POCKET_HORNET_CONFIG"},"payload":{"products":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation), err.Error())
		})
	}
}

func TestValidateIsPermissive(t *testing.T) {
	raw := `{
		"meta": {"type": "POCKET_HORNET_CONFIG", "version": "9.9", "date": "yesterday", "extra": 1},
		"payload": {"teams": [{"id": "t1", "name": "A", "active": true, "color": "red"}], "unknown": true}
	}`
	doc, err := Validate([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "9.9", doc.Meta.Version)
	_, ok := doc.Meta.Time()
	assert.False(t, ok)
	assert.Nil(t, doc.Payload.Products)
	assert.Nil(t, doc.Payload.Costing)
	assert.Equal(t, []roster.Team{{ID: "t1", Name: "A", Active: true}}, doc.Payload.Teams)
}

func TestValidateAcceptsQuotedDecimals(t *testing.T) {
	raw := `{"meta":{"type":"POCKET_HORNET_CONFIG"},"payload":{"products":[{"id":"a","price":"4.20"}],"lootConfig":{"active":true,"rentCost":"7"}}}`
	doc, err := Validate([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "4.2", doc.Payload.Products[0].Price.String())
	assert.Equal(t, "7", doc.Payload.Costing.RentCost.String())
}

func TestMergeKeepsAbsentFields(t *testing.T) {
	current := sampleState()
	p := Payload{Teams: []roster.Team{}}

	next := p.Merge(current)

	assert.Empty(t, next.Teams)
	assert.Equal(t, current.Products, next.Products)
	assert.Equal(t, current.Categories, next.Categories)
	assert.Equal(t, current.Costing, next.Costing)
}

func TestFileName(t *testing.T) {
	name := FileName(exportTime)
	assert.Equal(t, "HORNET_CONFIG_2026-10-16.json", name)
	assert.True(t, strings.HasSuffix(name, ".json"))
}

func TestEncodeLeavesDecimalDefaultsAlone(t *testing.T) {
	raw, err := Encode(Export(sampleState(), exportTime))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"foodCost": 1.25`)

	p, err := json.Marshal(sampleState().Products[0])
	require.NoError(t, err)
	assert.Contains(t, string(p), `"price":"5.5"`)
}
