package catalog

import "github.com/scottwells/storefront/internal/model"

// Visible derives the subset of products matching the active category.
// CategoryAll returns the input unchanged; any other category returns the
// order-preserving subsequence whose tags contain it. Products with no
// tags match only CategoryAll. Pure function, safe to recompute on every
// store change.
func Visible(products []model.Product, active model.Category) []model.Product {
	if active == model.CategoryAll {
		return products
	}

	var out []model.Product
	for _, p := range products {
		if p.HasTag(active) {
			out = append(out, p)
		}
	}
	return out
}
