package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/scottwells/storefront/internal/backend"
	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/model"
	"github.com/scottwells/storefront/internal/session"
)

// fakeAdapter serves canned products and records calls. Each method can
// be overridden per test.
type fakeAdapter struct {
	mu       sync.Mutex
	products []model.Product
	fetchErr error

	insertErr error
	inserts   int

	deleteErr error
	deleted   []string

	credentialsOK  bool
	credentialsErr error
}

func (f *fakeAdapter) FetchAll(ctx context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]model.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeAdapter) Insert(ctx context.Context, draft model.Draft) (*model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	p := model.Product{
		ID:          "inserted",
		Name:        draft.Name,
		Price:       draft.Price,
		Tags:        draft.Tags,
		Description: draft.Description,
		Status:      model.StatusAvailable,
	}
	f.products = append([]model.Product{p}, f.products...)
	return &p, nil
}

func (f *fakeAdapter) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeAdapter) CheckCredentials(ctx context.Context, username, password string) (bool, error) {
	return f.credentialsOK, f.credentialsErr
}

var _ backend.Adapter = (*fakeAdapter)(nil)

func validDraft() model.Draft {
	return model.Draft{
		Name:        "Dell XPS",
		Price:       250,
		Tags:        []model.Category{model.CategoryLaptops},
		Description: "good condition",
	}
}

func newTestController(adapter backend.Adapter) *Controller {
	return New(adapter, session.NewMemoryFlagStore())
}

func loginAdmin(t *testing.T, c *Controller, adapter *fakeAdapter) {
	t.Helper()
	adapter.credentialsOK = true
	if err := c.Login(context.Background(), "admin", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestInitializePopulatesCatalog(t *testing.T) {
	adapter := &fakeAdapter{products: []model.Product{
		{ID: "1", Name: "First"},
		{ID: "2", Name: "Second"},
	}}
	c := newTestController(adapter)

	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !c.Loaded() {
		t.Error("expected controller to report loaded")
	}
	if c.Loading() {
		t.Error("expected loading to be done")
	}
	if got := c.Products(); len(got) != 2 || got[0].ID != "1" {
		t.Errorf("unexpected catalog: %v", got)
	}
}

func TestFetchFailureKeepsCatalogAndRetryRecovers(t *testing.T) {
	adapter := &fakeAdapter{products: []model.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	c := newTestController(adapter)
	ctx := context.Background()

	if err := c.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	adapter.mu.Lock()
	adapter.fetchErr = backend.ErrConnectivity
	adapter.mu.Unlock()

	if err := c.Retry(ctx); !errors.Is(err, backend.ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}
	if len(c.Products()) != 3 {
		t.Errorf("expected existing 3 products to stay visible, got %d", len(c.Products()))
	}
	if c.LoadError() == nil {
		t.Error("expected load error to be recorded")
	}

	adapter.mu.Lock()
	adapter.fetchErr = nil
	adapter.products = []model.Product{{ID: "4"}}
	adapter.mu.Unlock()

	if err := c.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if c.LoadError() != nil {
		t.Errorf("expected load error cleared, got %v", c.LoadError())
	}
	if got := c.Products(); len(got) != 1 || got[0].ID != "4" {
		t.Errorf("expected catalog replaced by retry result, got %v", got)
	}
}

func TestRequestAddRequiresAdmin(t *testing.T) {
	adapter := &fakeAdapter{}
	c := newTestController(adapter)

	err := c.RequestAdd(context.Background(), validDraft())
	if !errors.Is(err, ErrAdminRequired) {
		t.Fatalf("expected ErrAdminRequired, got %v", err)
	}
	if adapter.inserts != 0 {
		t.Error("expected no backend call without admin session")
	}
}

func TestRequestAddValidatesBeforeInsert(t *testing.T) {
	adapter := &fakeAdapter{}
	c := newTestController(adapter)
	loginAdmin(t, c, adapter)

	err := c.RequestAdd(context.Background(), model.Draft{Name: ""})
	if !errors.Is(err, catalog.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if adapter.inserts != 0 {
		t.Error("expected no backend call for invalid draft")
	}
}

func TestRequestAddSuccessRefreshesAndClosesDialog(t *testing.T) {
	adapter := &fakeAdapter{}
	c := newTestController(adapter)
	loginAdmin(t, c, adapter)
	c.OpenAddDialog()

	if err := c.RequestAdd(context.Background(), validDraft()); err != nil {
		t.Fatalf("RequestAdd: %v", err)
	}
	if c.AddDialogOpen() {
		t.Error("expected add dialog closed after success")
	}
	got := c.Products()
	if len(got) != 1 || got[0].ID != "inserted" {
		t.Errorf("expected refreshed catalog with inserted product, got %v", got)
	}
}

func TestRequestAddPermissionErrorKeepsDialogOpen(t *testing.T) {
	adapter := &fakeAdapter{products: []model.Product{{ID: "1"}}}
	c := newTestController(adapter)
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	loginAdmin(t, c, adapter)
	c.OpenAddDialog()

	adapter.insertErr = backend.ErrPermission
	err := c.RequestAdd(context.Background(), validDraft())
	if !errors.Is(err, backend.ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
	if !c.AddDialogOpen() {
		t.Error("expected add dialog to stay open after permission rejection")
	}
	if len(c.Products()) != 1 {
		t.Errorf("expected catalog unchanged, got %v", c.Products())
	}
}

func TestRequestDeleteRequiresConfirmation(t *testing.T) {
	adapter := &fakeAdapter{products: []model.Product{{ID: "1"}}}
	c := newTestController(adapter)
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	loginAdmin(t, c, adapter)

	err := c.RequestDelete(context.Background(), "1", false)
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if len(adapter.deleted) != 0 {
		t.Error("expected no backend call without confirmation")
	}
	if len(c.Products()) != 1 {
		t.Error("expected catalog unchanged")
	}
}

func TestRequestDeleteConfirmedFirst(t *testing.T) {
	adapter := &fakeAdapter{products: []model.Product{{ID: "1"}, {ID: "2"}}}
	c := newTestController(adapter)
	ctx := context.Background()
	if err := c.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	loginAdmin(t, c, adapter)
	c.SelectProduct("1")

	// Backend failure leaves the catalog untouched.
	adapter.deleteErr = backend.ErrConnectivity
	if err := c.RequestDelete(ctx, "1", true); !errors.Is(err, backend.ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}
	if len(c.Products()) != 2 {
		t.Error("expected catalog unchanged after failed delete")
	}
	if c.SelectedProduct() == nil {
		t.Error("expected selection kept after failed delete")
	}

	adapter.deleteErr = nil
	if err := c.RequestDelete(ctx, "1", true); err != nil {
		t.Fatalf("RequestDelete: %v", err)
	}
	if got := c.Products(); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("expected product 1 removed, got %v", got)
	}
	if c.SelectedProduct() != nil {
		t.Error("expected selection cleared after deleting selected product")
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	adapter := &fakeAdapter{}
	c := newTestController(adapter)
	ctx := context.Background()

	if err := c.Login(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if c.IsAdmin() {
		t.Error("expected admin flag unset after failed login")
	}

	// A connectivity error resolves to the same generic failure.
	adapter.credentialsErr = backend.ErrConnectivity
	if err := c.Login(ctx, "admin", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if c.IsAdmin() {
		t.Error("expected admin flag unset after connectivity failure")
	}
}

func TestLoginPersistsFlag(t *testing.T) {
	adapter := &fakeAdapter{credentialsOK: true}
	flags := session.NewMemoryFlagStore()
	c := New(adapter, flags)
	ctx := context.Background()
	c.OpenLoginDialog()

	if err := c.Login(ctx, "admin", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !c.IsAdmin() {
		t.Error("expected admin flag set")
	}
	if c.LoginDialogOpen() {
		t.Error("expected login dialog closed")
	}

	// A fresh controller sharing the flag store restores the session.
	restored := New(adapter, flags)
	if err := restored.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !restored.IsAdmin() {
		t.Error("expected persisted flag to restore admin session")
	}
}

func TestLogoutResetsViewState(t *testing.T) {
	adapter := &fakeAdapter{credentialsOK: true}
	flags := session.NewMemoryFlagStore()
	c := New(adapter, flags)
	ctx := context.Background()

	if err := c.Login(ctx, "admin", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	c.Navigate(ScreenAbout)
	c.SetFilter(model.CategoryLaptops)

	c.Logout(ctx)

	if c.IsAdmin() {
		t.Error("expected admin flag cleared")
	}
	if c.Screen() != ScreenCatalog {
		t.Errorf("expected catalog screen, got %s", c.Screen())
	}
	if c.Filter() != model.CategoryAll {
		t.Errorf("expected filter reset to All, got %s", c.Filter())
	}

	restored := New(adapter, flags)
	if err := restored.Initialize(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if restored.IsAdmin() {
		t.Error("expected persisted flag cleared by logout")
	}
}

func TestSetFilterFallsBackToAll(t *testing.T) {
	c := newTestController(&fakeAdapter{})
	c.SetFilter("Boats")
	if c.Filter() != model.CategoryAll {
		t.Errorf("expected fallback to All, got %s", c.Filter())
	}
}

func TestVisibleAppliesActiveFilter(t *testing.T) {
	adapter := &fakeAdapter{products: []model.Product{
		{ID: "1", Tags: []model.Category{model.CategoryLaptops}},
		{ID: "2", Tags: []model.Category{model.CategoryPrinters}},
	}}
	c := newTestController(adapter)
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	c.SetFilter(model.CategoryLaptops)
	got := c.Visible()
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("expected only laptop visible, got %v", got)
	}
}

// blockingAdapter holds its first fetch in flight while newer ones
// complete, to exercise the stale-response guard.
type blockingAdapter struct {
	fakeAdapter
	started chan struct{}
	release chan struct{}
	first   bool
}

func (b *blockingAdapter) FetchAll(ctx context.Context) ([]model.Product, error) {
	b.mu.Lock()
	first := !b.first
	b.first = true
	b.mu.Unlock()
	if first {
		close(b.started)
		<-b.release
		return []model.Product{{ID: "stale"}}, nil
	}
	return b.fakeAdapter.FetchAll(ctx)
}

func TestStaleFetchDoesNotOverwriteNewer(t *testing.T) {
	adapter := &blockingAdapter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	adapter.products = []model.Product{{ID: "fresh"}}
	c := newTestController(adapter)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.Retry(ctx) }()
	<-adapter.started

	// A newer fetch completes while the first is still in flight.
	if err := c.Retry(ctx); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	close(adapter.release)
	if err := <-done; err != nil {
		t.Fatalf("stale fetch: %v", err)
	}

	got := c.Products()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Errorf("expected newer fetch result to win, got %v", got)
	}
}
