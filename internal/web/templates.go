package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/scottwells/storefront/internal/controller"
	"github.com/scottwells/storefront/internal/inquiry"
	"github.com/scottwells/storefront/internal/model"
	webembed "github.com/scottwells/storefront/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatPrice": inquiry.FormatPrice,
		"inquiryLink": func(p *model.Product) string {
			return inquiry.Link(model.WhatsAppNumber, p)
		},
		"imageOrPlaceholder": func(p *model.Product) string {
			if p.ImageURL == "" {
				return model.PlaceholderImage
			}
			return p.ImageURL
		},
		"currency": func() string { return model.Currency },
		"business": func() string { return model.BusinessName },
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"catalog.html",
		"product.html",
		"product_new.html",
		"about.html",
		"contact.html",
		"login.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Admin   bool
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Controller *controller.Controller
	Templates  *Templates
	JWTSecret  string
}
