package web

import (
	"net/http"

	"github.com/scottwells/storefront/internal/controller"
	webembed "github.com/scottwells/storefront/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(ctrl *controller.Controller, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Controller: ctrl,
		Templates:  templates,
		JWTSecret:  jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.CatalogPage)
	mux.HandleFunc("GET /about", s.AboutPage)
	mux.HandleFunc("GET /contact", s.ContactPage)
	mux.HandleFunc("GET /products/{id}", s.ProductPage)
	mux.HandleFunc("POST /retry", s.RetrySubmit)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Admin routes.
	mux.Handle("GET /products/new", cookieAuth(http.HandlerFunc(s.ProductNewPage)))
	mux.Handle("POST /products/new", cookieAuth(http.HandlerFunc(s.ProductCreateSubmit)))
	mux.Handle("POST /products/{id}/delete", cookieAuth(http.HandlerFunc(s.ProductDeleteSubmit)))

	return mux, nil
}
