package model

// Storefront identity and display constants.
const (
	BusinessName   = "Scottwells"
	Currency       = "P"
	WhatsAppNumber = "26778037530"

	// PlaceholderImage is substituted at render time for products
	// without an image.
	PlaceholderImage = "https://via.placeholder.com/600x400?text=No+Image"
)
