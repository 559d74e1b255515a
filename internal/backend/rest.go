package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/model"
)

// RESTAdapter talks to a hosted Supabase/PostgREST backend over HTTPS.
// Access control is entirely the backend's row-level policies; the
// adapter only translates their rejections into the error taxonomy.
type RESTAdapter struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewRESTAdapter creates an adapter for the given Supabase project URL
// and public anon key.
func NewRESTAdapter(baseURL, anonKey string) *RESTAdapter {
	return &RESTAdapter{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchAll returns all products sorted by created_at descending.
func (a *RESTAdapter) FetchAll(ctx context.Context) ([]model.Product, error) {
	reqURL := a.baseURL + "/rest/v1/products?select=*&order=created_at.desc"

	resp, err := a.do(ctx, http.MethodGet, reqURL, nil, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, a.statusError("list products", resp)
	}

	var products []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decoding products: %v", ErrConnectivity, err)
	}
	return products, nil
}

// Insert creates a product row and returns the backend-assigned record.
func (a *RESTAdapter) Insert(ctx context.Context, draft model.Draft) (*model.Product, error) {
	if err := catalog.ValidateDraft(draft); err != nil {
		return nil, err
	}
	if draft.Status == "" {
		draft.Status = model.StatusAvailable
	}
	if draft.ImageURL == "" {
		draft.ImageURL = model.PlaceholderImage
	}

	body, err := json.Marshal([]model.Draft{draft})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding draft: %v", catalog.ErrValidation, err)
	}

	reqURL := a.baseURL + "/rest/v1/products"
	resp, err := a.do(ctx, http.MethodPost, reqURL, bytes.NewReader(body), "return=representation")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, a.statusError("insert product", resp)
	}

	var created []model.Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: decoding inserted product: %v", ErrConnectivity, err)
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("%w: backend returned no record", ErrConnectivity)
	}
	return &created[0], nil
}

// Delete removes a product row. PostgREST treats deleting an absent row
// as a success, which matches the idempotent contract.
func (a *RESTAdapter) Delete(ctx context.Context, id string) error {
	reqURL := a.baseURL + "/rest/v1/products?id=eq." + url.QueryEscape(id)

	resp, err := a.do(ctx, http.MethodDelete, reqURL, nil, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return a.statusError("delete product", resp)
	}
	return nil
}

// CheckCredentials matches a row in the admins table. Fails closed: any
// failure resolves to false.
func (a *RESTAdapter) CheckCredentials(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	reqURL := fmt.Sprintf("%s/rest/v1/admins?select=id&username=eq.%s&password=eq.%s&limit=1",
		a.baseURL, url.QueryEscape(username), url.QueryEscape(password))

	resp, err := a.do(ctx, http.MethodGet, reqURL, nil, "")
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, a.statusError("check credentials", resp)
	}

	var rows []struct {
		ID json.Number `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return false, fmt.Errorf("%w: decoding admins: %v", ErrConnectivity, err)
	}
	return len(rows) > 0, nil
}

// do builds and issues a request with the Supabase auth headers.
func (a *RESTAdapter) do(ctx context.Context, method, reqURL string, body io.Reader, prefer string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", a.anonKey)
	req.Header.Set("Authorization", "Bearer "+a.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	return a.httpClient.Do(req)
}

// statusError maps a non-success response to the error taxonomy.
// 401/403 and PostgREST's RLS violation code mean the access policy
// rejected the request; everything else is a connectivity-class failure.
func (a *RESTAdapter) statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden ||
		bytes.Contains(raw, []byte("42501")) || bytes.Contains(raw, []byte("row-level security")) {
		return fmt.Errorf("%w: %s: %s", ErrPermission, op, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity {
		return fmt.Errorf("%w: %s: %s", catalog.ErrValidation, op, strings.TrimSpace(string(raw)))
	}
	return fmt.Errorf("%w: %s: status %d: %s", ErrConnectivity, op, resp.StatusCode, strings.TrimSpace(string(raw)))
}
