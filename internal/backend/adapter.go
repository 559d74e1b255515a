package backend

import (
	"context"

	"github.com/scottwells/storefront/internal/model"
)

// Adapter is the boundary to the product data backend. The catalog core
// depends only on this contract; the remote (Supabase) and local (SQLite)
// variants are interchangeable.
type Adapter interface {
	// FetchAll returns every product, sorted by creation time descending.
	// Fails with ErrConnectivity on network or backend failure.
	FetchAll(ctx context.Context) ([]model.Product, error)

	// Insert stores a new product and returns the record with the
	// backend-assigned id and creation time. Fails with ErrPermission
	// when the backend's access policy rejects the write, or with
	// catalog.ErrValidation for malformed input.
	Insert(ctx context.Context, draft model.Draft) (*model.Product, error)

	// Delete removes a product. Deleting an absent id is a success
	// from the caller's perspective.
	Delete(ctx context.Context, id string) error

	// CheckCredentials verifies an operator login. Fails closed:
	// returns false on no match, connectivity error, or malformed input.
	CheckCredentials(ctx context.Context, username, password string) (bool, error)
}
