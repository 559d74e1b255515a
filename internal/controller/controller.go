package controller

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/scottwells/storefront/internal/backend"
	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/model"
	"github.com/scottwells/storefront/internal/session"
)

// Screen identifies the active page. Transitions are plain assignment;
// there is no history stack.
type Screen string

const (
	ScreenCatalog Screen = "Catalog"
	ScreenAbout   Screen = "About"
	ScreenContact Screen = "Contact"
)

var (
	// ErrAdminRequired gates write actions behind the admin session.
	ErrAdminRequired = errors.New("admin session required")

	// ErrConfirmationRequired refuses a delete that was not explicitly
	// confirmed.
	ErrConfirmationRequired = errors.New("delete not confirmed")

	// ErrInvalidCredentials is deliberately generic: it never reveals
	// which field was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Controller coordinates the catalog store, the backend adapter, and the
// view state: active screen, category filter, overlay flags, load/error
// state, and the admin session flag.
type Controller struct {
	adapter backend.Adapter
	flags   session.FlagStore
	store   *catalog.Store

	mu              sync.Mutex
	screen          Screen
	filter          model.Category
	addDialogOpen   bool
	loginDialogOpen bool
	selectedID      string
	isAdmin         bool
	loading         bool
	loadErr         error
	loaded          bool
	fetchSeq        uint64
}

// New creates a controller in its initial state: catalog screen, filter
// All, nothing loaded.
func New(adapter backend.Adapter, flags session.FlagStore) *Controller {
	return &Controller{
		adapter: adapter,
		flags:   flags,
		store:   catalog.NewStore(),
		screen:  ScreenCatalog,
		filter:  model.CategoryAll,
	}
}

// Initialize restores the persisted admin flag and issues the initial
// fetch. A fetch failure is recorded as a retryable error and does not
// clear an already-loaded catalog.
func (c *Controller) Initialize(ctx context.Context) error {
	isAdmin, err := c.flags.Get(ctx)
	if err != nil {
		slog.Warn("failed to restore admin session flag", "error", err)
	} else {
		c.mu.Lock()
		c.isAdmin = isAdmin
		c.mu.Unlock()
	}

	return c.fetch(ctx)
}

// Retry re-issues the fetch after a failure.
func (c *Controller) Retry(ctx context.Context) error {
	return c.fetch(ctx)
}

// fetch loads the full catalog. Each fetch is sequence-stamped so a
// stale response never overwrites the result of a newer one.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.loading = true
	c.mu.Unlock()

	products, err := c.adapter.FetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.fetchSeq {
		// A newer fetch was issued while this one was in flight.
		return nil
	}
	c.loading = false

	if err != nil {
		c.loadErr = err
		return err
	}

	c.loadErr = nil
	c.loaded = true
	c.store.Load(products)
	return nil
}

// RequestAdd validates the draft, then attempts the insert. The draft is
// checked against the add-flow contract before any backend call. On
// success the add dialog closes and a full refresh is triggered, since
// the server-assigned record is authoritative over the local draft. On a
// permission rejection the dialog stays open and the catalog is not
// refreshed.
func (c *Controller) RequestAdd(ctx context.Context, draft model.Draft) error {
	c.mu.Lock()
	isAdmin := c.isAdmin
	c.mu.Unlock()
	if !isAdmin {
		return ErrAdminRequired
	}

	if err := catalog.ValidateDraft(draft); err != nil {
		return err
	}

	if _, err := c.adapter.Insert(ctx, draft); err != nil {
		return err
	}

	c.mu.Lock()
	c.addDialogOpen = false
	c.mu.Unlock()

	return c.fetch(ctx)
}

// RequestDelete removes a product, confirmed-first: the adapter call
// must resolve without error before the in-memory catalog mutates, so
// the display never shows a state the backend rejected. The confirmed
// signal comes from an external confirmation prompt; without it the
// delete is refused.
func (c *Controller) RequestDelete(ctx context.Context, id string, confirmed bool) error {
	c.mu.Lock()
	isAdmin := c.isAdmin
	c.mu.Unlock()
	if !isAdmin {
		return ErrAdminRequired
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := c.adapter.Delete(ctx, id); err != nil {
		return err
	}

	c.store.Remove(id)

	c.mu.Lock()
	if c.selectedID == id {
		c.selectedID = ""
	}
	c.mu.Unlock()
	return nil
}

// Login verifies credentials through the adapter. On success the admin
// flag is set and persisted and the login overlay closes. Any failure,
// including a connectivity error, resolves to the same generic error.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	ok, err := c.adapter.CheckCredentials(ctx, username, password)
	if err != nil {
		slog.Warn("credential check failed", "error", err)
		return ErrInvalidCredentials
	}
	if !ok {
		return ErrInvalidCredentials
	}

	c.mu.Lock()
	c.isAdmin = true
	c.loginDialogOpen = false
	c.mu.Unlock()

	if err := c.flags.Set(ctx); err != nil {
		slog.Warn("failed to persist admin session flag", "error", err)
	}
	return nil
}

// Logout clears the admin flag and its persistence, resets the filter,
// and returns to the catalog screen.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.isAdmin = false
	c.screen = ScreenCatalog
	c.filter = model.CategoryAll
	c.mu.Unlock()

	if err := c.flags.Clear(ctx); err != nil {
		slog.Warn("failed to clear admin session flag", "error", err)
	}
}

// Navigate switches the active screen.
func (c *Controller) Navigate(s Screen) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.screen = s
}

// SetFilter sets the active category. Unknown categories fall back to All.
func (c *Controller) SetFilter(category model.Category) {
	if !model.ValidCategory(category) {
		category = model.CategoryAll
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = category
}

// Visible returns the filtered product list in display order.
func (c *Controller) Visible() []model.Product {
	c.mu.Lock()
	filter := c.filter
	c.mu.Unlock()
	return catalog.Visible(c.store.Products(), filter)
}

// Products returns the unfiltered catalog snapshot.
func (c *Controller) Products() []model.Product {
	return c.store.Products()
}

// Product returns a single product by id, or nil.
func (c *Controller) Product(id string) *model.Product {
	return c.store.Get(id)
}

// SelectProduct opens the detail overlay for the given product.
func (c *Controller) SelectProduct(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = id
}

// ClearSelection closes the detail overlay.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = ""
}

// SelectedProduct returns the product in the detail overlay, or nil.
func (c *Controller) SelectedProduct() *model.Product {
	c.mu.Lock()
	id := c.selectedID
	c.mu.Unlock()
	if id == "" {
		return nil
	}
	return c.store.Get(id)
}

func (c *Controller) OpenAddDialog() { c.setOverlay(&c.addDialogOpen, true) }

func (c *Controller) CloseAddDialog() { c.setOverlay(&c.addDialogOpen, false) }

func (c *Controller) OpenLoginDialog() { c.setOverlay(&c.loginDialogOpen, true) }

func (c *Controller) CloseLoginDialog() { c.setOverlay(&c.loginDialogOpen, false) }

func (c *Controller) setOverlay(flag *bool, v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*flag = v
}

// Screen returns the active screen.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Filter returns the active category filter.
func (c *Controller) Filter() model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// IsAdmin reports whether the admin session is active.
func (c *Controller) IsAdmin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isAdmin
}

// AddDialogOpen reports whether the add overlay is open.
func (c *Controller) AddDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addDialogOpen
}

// LoginDialogOpen reports whether the login overlay is open.
func (c *Controller) LoginDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginDialogOpen
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LoadError returns the last fetch error, or nil. A non-nil value means
// the retry affordance should be shown; previously loaded products stay
// visible regardless.
func (c *Controller) LoadError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Loaded reports whether at least one fetch has succeeded.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}
