package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/model"
)

// LocalAdapter is the offline variant: products and credentials live in
// a local SQLite database, ids are generated locally, and credential
// checks verify bcrypt hashes instead of forwarding to a remote policy.
type LocalAdapter struct {
	db *sql.DB
}

// NewLocalAdapter wraps an open database.
func NewLocalAdapter(db *sql.DB) *LocalAdapter {
	return &LocalAdapter{db: db}
}

// FetchAll returns all products, newest first.
func (a *LocalAdapter) FetchAll(ctx context.Context) ([]model.Product, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, name, price, description, image_url, gallery, tags, status, created_at
		 FROM products ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: listing products: %v", ErrConnectivity, err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing products: %v", ErrConnectivity, err)
	}
	return products, nil
}

// Insert validates the draft, assigns a local uuid and creation time,
// and stores the row.
func (a *LocalAdapter) Insert(ctx context.Context, draft model.Draft) (*model.Product, error) {
	if err := catalog.ValidateDraft(draft); err != nil {
		return nil, err
	}

	status := draft.Status
	if status == "" {
		status = model.StatusAvailable
	}
	if status != model.StatusAvailable && status != model.StatusSold {
		return nil, fmt.Errorf("%w: invalid status %q", catalog.ErrValidation, status)
	}

	imageURL := draft.ImageURL
	if imageURL == "" {
		imageURL = model.PlaceholderImage
	}

	tags, err := json.Marshal(draft.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding tags: %v", catalog.ErrValidation, err)
	}

	now := time.Now().UTC()
	p := &model.Product{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Price:       draft.Price,
		Tags:        draft.Tags,
		Description: draft.Description,
		ImageURL:    imageURL,
		Status:      status,
		CreatedAt:   &now,
	}

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO products (id, name, price, description, image_url, tags, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Price, p.Description, p.ImageURL, string(tags), p.Status, now,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: inserting product: %v", ErrConnectivity, err)
	}
	return p, nil
}

// Delete removes a product row. An absent id deletes zero rows, which is
// still a success.
func (a *LocalAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting product: %v", ErrConnectivity, err)
	}
	return nil
}

// CheckCredentials verifies a bcrypt hash for the given admin. Fails
// closed: unknown user, hash mismatch, and query errors all resolve to
// false.
func (a *LocalAdapter) CheckCredentials(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	var hash string
	err := a.db.QueryRowContext(ctx,
		`SELECT password_hash FROM admins WHERE username = ?`, username,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: querying admin: %v", ErrConnectivity, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return false, nil
	}
	return true, nil
}

// CreateAdmin stores an admin account with a bcrypt password hash.
// Used by first-run bootstrap, not part of the Adapter contract.
func (a *LocalAdapter) CreateAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO admins (username, password_hash) VALUES (?, ?)`,
		username, string(hash),
	)
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}
	return nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*model.Product, error) {
	var p model.Product
	var description, imageURL, gallery, tags sql.NullString
	var createdAt time.Time

	err := s.Scan(&p.ID, &p.Name, &p.Price, &description, &imageURL, &gallery, &tags, &p.Status, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: scanning product: %v", ErrConnectivity, err)
	}

	p.Description = description.String
	p.ImageURL = imageURL.String
	p.CreatedAt = &createdAt

	if tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &p.Tags); err != nil {
			return nil, fmt.Errorf("%w: decoding tags for %s: %v", ErrConnectivity, p.ID, err)
		}
	}
	if gallery.String != "" {
		if err := json.Unmarshal([]byte(gallery.String), &p.Gallery); err != nil {
			return nil, fmt.Errorf("%w: decoding gallery for %s: %v", ErrConnectivity, p.ID, err)
		}
	}
	return &p, nil
}
