package roster

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Repo holds teams and payment methods. Ledger events keep a copied team label,
// so nothing here is referenced by id once an event is recorded.
type Repo struct {
	log     *slog.Logger
	teams   []Team
	methods []PaymentMethod
}

func NewRepo(log *slog.Logger) *Repo {
	return &Repo{log: log, methods: DefaultPaymentMethods()}
}

/* Teams */

func (r *Repo) Teams() []Team { return slices.Clone(r.teams) }

func (r *Repo) Team(id string) (Team, bool) {
	if i := r.teamIndex(id); i >= 0 {
		return r.teams[i], true
	}
	return Team{}, false
}

func (r *Repo) AddTeam(name string) Team {
	name = strings.TrimSpace(name)
	if name == "" {
		name = NewTeamName
	}
	t := Team{ID: uuid.NewString(), Name: name, Active: true}
	r.teams = append(r.teams, t)
	return t
}

func (r *Repo) UpdateTeam(id string, patch TeamPatch) bool {
	i := r.teamIndex(id)
	if i < 0 {
		r.log.Warn("update of unknown team ignored", "team_id", id)
		return false
	}
	if patch.Name != nil {
		if n := strings.TrimSpace(*patch.Name); n != "" {
			r.teams[i].Name = n
		}
	}
	if patch.Active != nil {
		r.teams[i].Active = *patch.Active
	}
	return true
}

func (r *Repo) DeleteTeam(id string) bool {
	i := r.teamIndex(id)
	if i < 0 {
		return false
	}
	r.teams = slices.Delete(r.teams, i, i+1)
	return true
}

/* Payment methods */

func (r *Repo) PaymentMethods() []PaymentMethod { return slices.Clone(r.methods) }

func (r *Repo) PaymentMethod(id string) (PaymentMethod, bool) {
	if i := r.methodIndex(id); i >= 0 {
		return r.methods[i], true
	}
	return PaymentMethod{}, false
}

func (r *Repo) AddPaymentMethod(name string, kind PaymentKind) PaymentMethod {
	if !kind.Valid() {
		kind = PaymentCash
	}
	m := PaymentMethod{ID: uuid.NewString(), Name: strings.ToUpper(strings.TrimSpace(name)), Kind: kind, Active: true}
	r.methods = append(r.methods, m)
	return m
}

func (r *Repo) UpdatePaymentMethod(id string, patch PaymentMethodPatch) bool {
	i := r.methodIndex(id)
	if i < 0 {
		r.log.Warn("update of unknown payment method ignored", "method_id", id)
		return false
	}
	if patch.Name != nil {
		if n := strings.TrimSpace(*patch.Name); n != "" {
			r.methods[i].Name = strings.ToUpper(n)
		}
	}
	if patch.Kind != nil && patch.Kind.Valid() {
		r.methods[i].Kind = *patch.Kind
	}
	if patch.Active != nil {
		r.methods[i].Active = *patch.Active
	}
	return true
}

func (r *Repo) DeletePaymentMethod(id string) bool {
	i := r.methodIndex(id)
	if i < 0 {
		return false
	}
	r.methods = slices.Delete(r.methods, i, i+1)
	return true
}

// Replace swaps the whole roster. A nil methods slice keeps the defaults.
func (r *Repo) Replace(teams []Team, methods []PaymentMethod) {
	if methods == nil {
		methods = DefaultPaymentMethods()
	}
	r.teams, r.methods = slices.Clone(teams), slices.Clone(methods)
}

func (r *Repo) teamIndex(id string) int {
	return slices.IndexFunc(r.teams, func(t Team) bool { return t.ID == id })
}

func (r *Repo) methodIndex(id string) int {
	return slices.IndexFunc(r.methods, func(m PaymentMethod) bool { return m.ID == id })
}
