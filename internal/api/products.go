package api

import (
	"net/http"

	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/controller"
	"github.com/scottwells/storefront/internal/model"
)

// ProductsHandler handles product catalog endpoints.
type ProductsHandler struct {
	Controller *controller.Controller
}

// List handles GET /api/products. An optional ?category= query filters
// the result through the catalog engine without touching the shared
// view-state filter.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.Controller.Loaded() {
		if err := h.Controller.Retry(r.Context()); err != nil {
			writeError(w, err)
			return
		}
	}

	products := h.Controller.Products()
	if raw := r.URL.Query().Get("category"); raw != "" {
		category := model.Category(raw)
		if !model.ValidCategory(category) {
			jsonError(w, http.StatusBadRequest, "unknown category")
			return
		}
		products = catalog.Visible(products, category)
	}

	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := h.Controller.Product(r.PathValue("id"))
	if p == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	jsonResponse(w, http.StatusOK, p)
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft
	if err := decodeJSON(r, &draft); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Controller.RequestAdd(r.Context(), draft); err != nil {
		writeError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"message": "product created"})
}

// Delete handles DELETE /api/products/{id}. The explicit DELETE request
// is the confirmation signal; deleting an absent id is still a success.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Controller.RequestDelete(r.Context(), r.PathValue("id"), true); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
