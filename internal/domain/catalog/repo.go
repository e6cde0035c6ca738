package catalog

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/Spok95/pocket-hornet/internal/apperr"
)

var (
	ErrUnknownProduct    = errors.New("catalog: unknown product")
	ErrUnknownCategory   = errors.New("catalog: unknown category")
	ErrCategoryExists    = errors.New("catalog: category already exists")
	ErrCategoryUnchanged = errors.New("catalog: category name unchanged")
	ErrProtectedCategory = errors.New("catalog: default category is protected")
	ErrEmptyCategory     = errors.New("catalog: empty category name")
)

// Repo is the in-memory catalog: an ordered product list and a sorted category set.
// It is not safe for concurrent use; the application container serializes access.
type Repo struct {
	log        *slog.Logger
	products   []Product
	categories []string
}

func NewRepo(log *slog.Logger) *Repo {
	return &Repo{log: log, categories: []string{DefaultCategory}}
}

// Products returns a copy of the products in display order.
func (r *Repo) Products() []Product {
	return slices.Clone(r.products)
}

func (r *Repo) Product(id string) (Product, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.products[i], true
	}
	return Product{}, false
}

// Categories returns a copy of the sorted category set.
func (r *Repo) Categories() []string {
	return slices.Clone(r.categories)
}

func (r *Repo) HasCategory(name string) bool {
	_, ok := slices.BinarySearch(r.categories, NormalizeCategory(name))
	return ok
}

// AddProduct appends a zero-priced active product. Unknown categories fall back to the default one.
func (r *Repo) AddProduct(category string) Product {
	category = NormalizeCategory(category)
	if !r.HasCategory(category) {
		category = DefaultCategory
	}
	p := Product{
		ID:       uuid.NewString(),
		Name:     NewProductName,
		Active:   true,
		Category: category,
	}
	r.products = append(r.products, p)
	return p
}

// UpdateProduct applies the non-nil fields of patch. An unknown id is logged and ignored.
func (r *Repo) UpdateProduct(id string, patch ProductPatch) bool {
	i := r.indexOf(id)
	if i < 0 {
		r.log.Warn("update of unknown product ignored", "product_id", id)
		return false
	}
	p := r.products[i]
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			r.log.Warn("negative price ignored", "product_id", id, "price", patch.Price.String())
		} else {
			p.Price = *patch.Price
		}
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	if patch.Category != nil {
		c := NormalizeCategory(*patch.Category)
		if r.HasCategory(c) {
			p.Category = c
		} else {
			r.log.Warn("move to unknown category ignored", "product_id", id, "category", c)
		}
	}
	r.products[i] = p
	return true
}

// DeleteProduct removes the product permanently.
func (r *Repo) DeleteProduct(id string) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	r.products = slices.Delete(r.products, i, i+1)
	return true
}

// ReorderProduct moves id to the position currently held by targetID.
func (r *Repo) ReorderProduct(id, targetID string) error {
	if id == targetID {
		return nil
	}
	from, to := r.indexOf(id), r.indexOf(targetID)
	if from < 0 || to < 0 {
		return apperr.Preconditionf("catalog.reorder", ErrUnknownProduct, "%q -> %q", id, targetID)
	}
	moved := r.products[from]
	next := slices.Delete(slices.Clone(r.products), from, from+1)
	r.products = slices.Insert(next, to, moved)
	return nil
}

// AddCategory inserts a normalized category. Empty or duplicate names are ignored.
func (r *Repo) AddCategory(name string) bool {
	name = NormalizeCategory(name)
	if name == "" || r.HasCategory(name) {
		return false
	}
	r.categories = sortedWith(r.categories, name)
	return true
}

// RenameCategory renames a category and every product in it in one step.
func (r *Repo) RenameCategory(oldName, newName string) error {
	const op = "catalog.rename_category"
	oldName, newName = NormalizeCategory(oldName), NormalizeCategory(newName)
	switch {
	case newName == "":
		return apperr.Preconditionf(op, ErrEmptyCategory, "rename %q", oldName)
	case oldName == DefaultCategory:
		return apperr.Preconditionf(op, ErrProtectedCategory, "rename %q", oldName)
	case !r.HasCategory(oldName):
		return apperr.Preconditionf(op, ErrUnknownCategory, "%q", oldName)
	case newName == oldName:
		return apperr.Preconditionf(op, ErrCategoryUnchanged, "%q", oldName)
	case r.HasCategory(newName):
		return apperr.Preconditionf(op, ErrCategoryExists, "%q", newName)
	}
	r.recategorize(oldName, newName, true)
	return nil
}

// DeleteCategory removes a category and moves its products to DefaultCategory in one step.
func (r *Repo) DeleteCategory(name string) error {
	const op = "catalog.delete_category"
	name = NormalizeCategory(name)
	if name == DefaultCategory {
		return apperr.Preconditionf(op, ErrProtectedCategory, "delete %q", name)
	}
	if !r.HasCategory(name) {
		return apperr.Preconditionf(op, ErrUnknownCategory, "%q", name)
	}
	r.recategorize(name, DefaultCategory, false)
	return nil
}

// Replace swaps the whole catalog. Categories are normalized, the default category is
// restored if missing and categories referenced only by products are added.
func (r *Repo) Replace(products []Product, categories []string) {
	cats := []string{DefaultCategory}
	for _, c := range categories {
		if c = NormalizeCategory(c); c != "" {
			cats = append(cats, c)
		}
	}
	next := make([]Product, 0, len(products))
	for _, p := range products {
		p.Category = NormalizeCategory(p.Category)
		if p.Category == "" {
			p.Category = DefaultCategory
		}
		cats = append(cats, p.Category)
		next = append(next, p)
	}
	slices.Sort(cats)
	r.products, r.categories = next, slices.Compact(cats)
}

// recategorize builds the new category set and product list before publishing either.
func (r *Repo) recategorize(from, to string, keepTarget bool) {
	cats := slices.DeleteFunc(slices.Clone(r.categories), func(c string) bool { return c == from })
	if keepTarget {
		cats = sortedWith(cats, to)
	}
	products := slices.Clone(r.products)
	for i := range products {
		if products[i].Category == from {
			products[i].Category = to
		}
	}
	r.categories, r.products = cats, products
}

func (r *Repo) indexOf(id string) int {
	return slices.IndexFunc(r.products, func(p Product) bool { return p.ID == id })
}

func sortedWith(set []string, name string) []string {
	out := append(slices.Clone(set), name)
	slices.Sort(out)
	return out
}
