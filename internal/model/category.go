package model

// Category is a catalog filter label. CategoryAll is a filter-only
// pseudo-category and is never attached to a product.
type Category string

const (
	CategoryAll         Category = "All"
	CategoryLaptops     Category = "Laptops"
	CategoryComputers   Category = "Computers"
	CategoryPrinters    Category = "Printers"
	CategoryAppliances  Category = "Appliances"
	CategoryFurniture   Category = "Furniture"
	CategoryCars        Category = "Cars"
	CategoryElectronics Category = "Electronics"
)

// Categories lists every filter value in display order, CategoryAll first.
var Categories = []Category{
	CategoryAll,
	CategoryLaptops,
	CategoryComputers,
	CategoryPrinters,
	CategoryAppliances,
	CategoryFurniture,
	CategoryCars,
	CategoryElectronics,
}

// ValidCategory reports whether c is a known filter value.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidTag reports whether c may be attached to a product
// (any known category except CategoryAll).
func ValidTag(c Category) bool {
	return c != CategoryAll && ValidCategory(c)
}
