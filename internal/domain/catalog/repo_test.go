package catalog

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/pocket-hornet/internal/apperr"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	return NewRepo(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seed(r *Repo, ids ...string) {
	ps := make([]Product, 0, len(ids))
	for _, id := range ids {
		ps = append(ps, Product{ID: id, Name: id, Active: true, Category: DefaultCategory})
	}
	r.Replace(ps, nil)
}

func ids(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestAddProductAppendsWithDefaults(t *testing.T) {
	r := newTestRepo(t)
	seed(r, "a")

	p := r.AddProduct("getränke")

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, NewProductName, p.Name)
	assert.True(t, p.Price.IsZero())
	assert.True(t, p.Active)
	assert.Equal(t, DefaultCategory, p.Category, "unknown category falls back to default")
	assert.Equal(t, []string{"a", p.ID}, ids(r.Products()))

	require.True(t, r.AddCategory("getränke"))
	p2 := r.AddProduct(" Getränke ")
	assert.Equal(t, "GETRÄNKE", p2.Category)
}

func TestUpdateProductPartial(t *testing.T) {
	r := newTestRepo(t)
	seed(r, "a")
	r.AddCategory("food")

	price := decimal.RequireFromString("2.50")
	name := "Cola"
	cat := "food"
	require.True(t, r.UpdateProduct("a", ProductPatch{Name: &name, Price: &price, Category: &cat}))

	p, ok := r.Product("a")
	require.True(t, ok)
	assert.Equal(t, "Cola", p.Name)
	assert.True(t, p.Price.Equal(price))
	assert.Equal(t, "FOOD", p.Category)
	assert.True(t, p.Active)

	neg := decimal.NewFromInt(-1)
	missing := "nope"
	r.UpdateProduct("a", ProductPatch{Price: &neg, Category: &missing})
	p, _ = r.Product("a")
	assert.True(t, p.Price.Equal(price), "negative price is ignored")
	assert.Equal(t, "FOOD", p.Category, "unknown category is ignored")
}

func TestUpdateUnknownProductIsNoop(t *testing.T) {
	r := newTestRepo(t)
	seed(r, "a")
	before := r.Products()

	off := false
	assert.False(t, r.UpdateProduct("zzz", ProductPatch{Active: &off}))
	assert.Equal(t, before, r.Products())
}

func TestDeleteProduct(t *testing.T) {
	r := newTestRepo(t)
	seed(r, "a", "b")

	assert.True(t, r.DeleteProduct("a"))
	assert.False(t, r.DeleteProduct("a"))
	assert.Equal(t, []string{"b"}, ids(r.Products()))
}

func TestReorderProduct(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		target string
		want   []string
		errs   bool
	}{
		{name: "b before a", id: "b", target: "a", want: []string{"b", "a", "c"}},
		{name: "a to c", id: "a", target: "c", want: []string{"b", "c", "a"}},
		{name: "c to a", id: "c", target: "a", want: []string{"c", "a", "b"}},
		{name: "same id", id: "b", target: "b", want: []string{"a", "b", "c"}},
		{name: "unknown target", id: "b", target: "x", want: []string{"a", "b", "c"}, errs: true},
		{name: "unknown source", id: "x", target: "a", want: []string{"a", "b", "c"}, errs: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRepo(t)
			seed(r, "a", "b", "c")

			err := r.ReorderProduct(tt.id, tt.target)
			if tt.errs {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, apperr.Precondition))
				assert.ErrorIs(t, err, ErrUnknownProduct)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, ids(r.Products()))
		})
	}
}

func TestAddCategoryNormalizesAndIgnoresDuplicates(t *testing.T) {
	r := newTestRepo(t)

	assert.True(t, r.AddCategory(" snacks "))
	assert.False(t, r.AddCategory("SNACKS"))
	assert.False(t, r.AddCategory("   "))
	assert.True(t, r.AddCategory("bier"))
	assert.Equal(t, []string{"ALLGEMEIN", "BIER", "SNACKS"}, r.Categories())
}

func TestRenameCategoryCascades(t *testing.T) {
	r := newTestRepo(t)
	r.Replace([]Product{
		{ID: "a", Category: "FOOD"},
		{ID: "b", Category: "DRINKS"},
		{ID: "c", Category: "FOOD"},
	}, []string{"FOOD", "DRINKS"})

	require.NoError(t, r.RenameCategory("food", "snacks"))

	assert.Equal(t, []string{"ALLGEMEIN", "DRINKS", "SNACKS"}, r.Categories())
	for _, p := range r.Products() {
		assert.NotEqual(t, "FOOD", p.Category)
	}
	a, _ := r.Product("a")
	c, _ := r.Product("c")
	b, _ := r.Product("b")
	assert.Equal(t, "SNACKS", a.Category)
	assert.Equal(t, "SNACKS", c.Category)
	assert.Equal(t, "DRINKS", b.Category)
}

func TestRenameCategoryRejections(t *testing.T) {
	r := newTestRepo(t)
	r.Replace(nil, []string{"FOOD", "DRINKS"})
	before := r.Categories()

	for _, tc := range []struct {
		old, new string
		want     error
	}{
		{"food", "drinks", ErrCategoryExists},
		{"food", "FOOD", ErrCategoryUnchanged},
		{"food", " ", ErrEmptyCategory},
		{"nope", "x", ErrUnknownCategory},
		{DefaultCategory, "GENERAL", ErrProtectedCategory},
	} {
		err := r.RenameCategory(tc.old, tc.new)
		require.ErrorIs(t, err, tc.want)
		assert.True(t, apperr.Is(err, apperr.Precondition))
	}
	assert.Equal(t, before, r.Categories())
}

func TestDeleteCategoryReassignsToDefault(t *testing.T) {
	r := newTestRepo(t)
	r.Replace([]Product{
		{ID: "a", Category: "FOOD"},
		{ID: "b", Category: "DRINKS"},
	}, []string{"FOOD", "DRINKS"})

	require.NoError(t, r.DeleteCategory("Food"))

	assert.Equal(t, []string{"ALLGEMEIN", "DRINKS"}, r.Categories())
	a, _ := r.Product("a")
	assert.Equal(t, DefaultCategory, a.Category)
}

func TestDeleteDefaultCategoryRejected(t *testing.T) {
	r := newTestRepo(t)
	seed(r, "a")

	err := r.DeleteCategory("allgemein")
	require.ErrorIs(t, err, ErrProtectedCategory)
	assert.True(t, apperr.Is(err, apperr.Precondition))
	assert.Equal(t, []string{DefaultCategory}, r.Categories())

	require.ErrorIs(t, r.DeleteCategory("missing"), ErrUnknownCategory)
}

func TestReplaceRestoresInvariants(t *testing.T) {
	r := newTestRepo(t)
	r.Replace([]Product{
		{ID: "a", Category: "bier"},
		{ID: "b"},
	}, []string{"snacks", "SNACKS"})

	assert.Equal(t, []string{"ALLGEMEIN", "BIER", "SNACKS"}, r.Categories())
	b, _ := r.Product("b")
	assert.Equal(t, DefaultCategory, b.Category)
	for _, p := range r.Products() {
		assert.True(t, r.HasCategory(p.Category))
	}
}

func TestProductsReturnsCopy(t *testing.T) {
	r := newTestRepo(t)
	seed(r, "a")

	ps := r.Products()
	ps[0].Name = "mutated"
	p, _ := r.Product("a")
	assert.Equal(t, "a", p.Name)
}
