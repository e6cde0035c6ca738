package snapshot

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/pocket-hornet/internal/domain/roster"
)

// number writes a decimal as a bare JSON number, the form older clients write.
// Decoding goes through decimal.Decimal, which reads numbers and quoted strings.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

// The wire types mirror Document with prices and costs as numbers.
type wireDocument struct {
	Meta    Meta        `json:"meta"`
	Payload wirePayload `json:"payload"`
}

type wirePayload struct {
	Products       []wireProduct          `json:"products"`
	Teams          []roster.Team          `json:"teams"`
	PaymentMethods []roster.PaymentMethod `json:"paymentMethods"`
	Categories     []string               `json:"categories"`
	Costing        *wireCosting           `json:"lootConfig"`
}

type wireProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    number `json:"price"`
	Active   bool   `json:"active"`
	Category string `json:"category"`
}

type wireCosting struct {
	Active           bool   `json:"active"`
	PaintCostPerUnit number `json:"paintCostPerBox"`
	RentCost         number `json:"rentCost"`
	ConsumablesCost  number `json:"foodCost"`
	RentPaid         bool   `json:"rentPaid"`
}

func toWire(doc Document) wireDocument {
	p := doc.Payload
	out := wireDocument{
		Meta: doc.Meta,
		Payload: wirePayload{
			Teams:          p.Teams,
			PaymentMethods: p.PaymentMethods,
			Categories:     p.Categories,
		},
	}
	if p.Products != nil {
		out.Payload.Products = make([]wireProduct, len(p.Products))
		for i, pr := range p.Products {
			out.Payload.Products[i] = wireProduct{
				ID: pr.ID, Name: pr.Name, Price: number(pr.Price), Active: pr.Active, Category: pr.Category,
			}
		}
	}
	if c := p.Costing; c != nil {
		out.Payload.Costing = &wireCosting{
			Active:           c.Active,
			PaintCostPerUnit: number(c.PaintCostPerUnit),
			RentCost:         number(c.RentCost),
			ConsumablesCost:  number(c.ConsumablesCost),
			RentPaid:         c.RentPaid,
		}
	}
	return out
}
