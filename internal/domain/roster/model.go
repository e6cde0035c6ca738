package roster

// NewTeamName is the placeholder name of a freshly added team.
const NewTeamName = "Neues Team"

// Team is a counterparty that can be booked against on invoice or internally.
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type TeamPatch struct {
	Name   *string
	Active *bool
}

type PaymentKind string

const (
	PaymentCash     PaymentKind = "cash"     // bar
	PaymentInvoice  PaymentKind = "invoice"  // rechnung, needs a team
	PaymentInternal PaymentKind = "internal" // verbrauch ohne geldfluss
)

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentCash, PaymentInvoice, PaymentInternal:
		return true
	}
	return false
}

type PaymentMethod struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Kind   PaymentKind `json:"kind"`
	Active bool        `json:"active"`
}

type PaymentMethodPatch struct {
	Name   *string
	Kind   *PaymentKind
	Active *bool
}

// DefaultPaymentMethods seeds an empty roster.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{ID: "cash", Name: "BAR", Kind: PaymentCash, Active: true},
		{ID: "invoice", Name: "RECHNUNG", Kind: PaymentInvoice, Active: true},
		{ID: "internal", Name: "INTERN", Kind: PaymentInternal, Active: true},
	}
}
