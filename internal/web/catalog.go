package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/scottwells/storefront/internal/backend"
	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/controller"
	"github.com/scottwells/storefront/internal/imaging"
	"github.com/scottwells/storefront/internal/model"
)

// catalogPageData is the data for the catalog grid.
type catalogPageData struct {
	PageData
	Products   []model.Product
	Categories []model.Category
	Active     model.Category
	LoadError  string
	Loading    bool
}

// CatalogPage handles GET /. An optional ?category= query sets the
// active filter. A fetch failure shows the retry affordance; products
// from an earlier successful load stay visible.
func (s *Server) CatalogPage(w http.ResponseWriter, r *http.Request) {
	s.Controller.Navigate(controller.ScreenCatalog)

	if raw := r.URL.Query().Get("category"); raw != "" {
		s.Controller.SetFilter(model.Category(raw))
	}

	if !s.Controller.Loaded() && s.Controller.LoadError() == nil {
		if err := s.Controller.Initialize(r.Context()); err != nil {
			slog.Error("initial catalog fetch failed", "error", err)
		}
	}

	data := &catalogPageData{
		PageData:   PageData{Title: model.BusinessName, Admin: clientIsAdmin(s.JWTSecret, r)},
		Products:   s.Controller.Visible(),
		Categories: model.Categories,
		Active:     s.Controller.Filter(),
	}
	if err := s.Controller.LoadError(); err != nil {
		data.LoadError = "Failed to load products. Please check your connection."
	}

	s.Templates.Render(w, "catalog.html", data)
}

// RetrySubmit handles POST /retry: re-issues the fetch and returns to
// the catalog.
func (s *Server) RetrySubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.Controller.Retry(r.Context()); err != nil {
		slog.Warn("catalog refresh retry failed", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AboutPage handles GET /about.
func (s *Server) AboutPage(w http.ResponseWriter, r *http.Request) {
	s.Controller.Navigate(controller.ScreenAbout)
	s.Templates.Render(w, "about.html", &PageData{
		Title: "About — " + model.BusinessName,
		Admin: clientIsAdmin(s.JWTSecret, r),
	})
}

// ContactPage handles GET /contact.
func (s *Server) ContactPage(w http.ResponseWriter, r *http.Request) {
	s.Controller.Navigate(controller.ScreenContact)
	s.Templates.Render(w, "contact.html", &PageData{
		Title: "Contact — " + model.BusinessName,
		Admin: clientIsAdmin(s.JWTSecret, r),
	})
}

// ProductPage handles GET /products/{id}: the detail overlay.
func (s *Server) ProductPage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p := s.Controller.Product(id)
	if p == nil {
		http.NotFound(w, r)
		return
	}
	s.Controller.SelectProduct(id)

	s.Templates.Render(w, "product.html", &struct {
		PageData
		Product *model.Product
	}{
		PageData: PageData{Title: p.Name, Admin: clientIsAdmin(s.JWTSecret, r)},
		Product:  p,
	})
}

// productFormData is the data for the add-product form.
type productFormData struct {
	PageData
	Tags  []model.Category
	Draft model.Draft
}

// ProductNewPage handles GET /products/new.
func (s *Server) ProductNewPage(w http.ResponseWriter, r *http.Request) {
	s.Controller.OpenAddDialog()
	s.Templates.Render(w, "product_new.html", &productFormData{
		PageData: PageData{Title: "Add Product", Admin: true},
		Tags:     model.Categories[1:],
	})
}

// ProductCreateSubmit handles POST /products/new. Validation failures
// and permission rejections re-render the form with the draft intact
// (the add overlay stays open); only success closes it and refreshes the
// catalog from the backend.
func (s *Server) ProductCreateSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 8<<20)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "form too large", http.StatusBadRequest)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	var tags []model.Category
	for _, raw := range r.Form["tags"] {
		tags = append(tags, model.Category(raw))
	}

	draft := model.Draft{
		Name:        r.FormValue("name"),
		Price:       price,
		Tags:        tags,
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("image_url"),
		Status:      r.FormValue("status"),
	}

	// An uploaded file takes precedence over a pasted URL and is
	// inlined as a data URL.
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		dataURL, err := imaging.InlineDataURL(file)
		if err != nil {
			s.renderProductForm(w, draft, err.Error())
			return
		}
		draft.ImageURL = dataURL
	}

	if err := s.Controller.RequestAdd(r.Context(), draft); err != nil {
		slog.Warn("failed to add product", "error", err)
		s.renderProductForm(w, draft, addErrorMessage(err))
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("product added", "user", claims.Username, "product", draft.Name)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// renderProductForm re-renders the add form with an error and the
// submitted draft.
func (s *Server) renderProductForm(w http.ResponseWriter, draft model.Draft, errMsg string) {
	s.Templates.Render(w, "product_new.html", &productFormData{
		PageData: PageData{Title: "Add Product", Admin: true, Error: errMsg},
		Tags:     model.Categories[1:],
		Draft:    draft,
	})
}

// addErrorMessage maps an add failure to its user-facing message. A
// permission rejection gets the specific remediation hint.
func addErrorMessage(err error) string {
	switch {
	case errors.Is(err, backend.ErrPermission):
		return "Permission denied: enable insert access for public in the backend's access policies."
	case errors.Is(err, catalog.ErrValidation):
		return "Please fill in all required fields and select at least one tag."
	case errors.Is(err, backend.ErrConnectivity):
		return "Could not reach the backend. Please try again."
	default:
		return "An error occurred while saving the product."
	}
}

// ProductDeleteSubmit handles POST /products/{id}/delete. The posted
// confirm field is the explicit confirmation signal; without it the
// delete is refused.
func (s *Server) ProductDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	confirmed := r.FormValue("confirm") == "yes"

	if err := s.Controller.RequestDelete(r.Context(), id, confirmed); err != nil {
		slog.Warn("failed to delete product", "id", id, "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	claims := GetWebClaims(r.Context())
	slog.Info("product deleted", "user", claims.Username, "id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
