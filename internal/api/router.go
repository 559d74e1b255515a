package api

import (
	"net/http"

	"github.com/scottwells/storefront/internal/controller"
)

// NewRouter creates the API router with all endpoints registered.
// Product reads are public, matching the backend's public-select policy;
// writes require a token from a successful login.
func NewRouter(ctrl *controller.Controller, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Controller: ctrl, JWTSecret: jwtSecret}
	productsHandler := &ProductsHandler{Controller: ctrl}

	authMW := AuthMiddleware(jwtSecret)

	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	mux.HandleFunc("GET /api/products", productsHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productsHandler.Get)
	mux.Handle("POST /api/products", authMW(http.HandlerFunc(productsHandler.Create)))
	mux.Handle("DELETE /api/products/{id}", authMW(http.HandlerFunc(productsHandler.Delete)))

	return mux
}
