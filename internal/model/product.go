package model

import "time"

// Product represents a single catalog listing.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Tags        []Category `json:"tags,omitempty"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	Gallery     []string   `json:"gallery,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Product statuses.
const (
	StatusAvailable = "Available"
	StatusSold      = "Sold"
)

// Sold reports whether the product is sold out. Sold products stay visible
// but the inquiry action is disabled.
func (p *Product) Sold() bool {
	return p.Status == StatusSold
}

// HasTag reports whether the product carries the given category tag.
// Products with no tags match nothing.
func (p *Product) HasTag(c Category) bool {
	for _, t := range p.Tags {
		if t == c {
			return true
		}
	}
	return false
}

// Draft is the operator-supplied input for a new listing, before the
// backend assigns an id and creation time.
type Draft struct {
	Name        string     `json:"name"`
	Price       float64    `json:"price"`
	Tags        []Category `json:"tags"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// HasTag reports whether the draft carries the given category tag.
func (d *Draft) HasTag(c Category) bool {
	for _, t := range d.Tags {
		if t == c {
			return true
		}
	}
	return false
}
