package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/scottwells/storefront/internal/backend"
	"github.com/scottwells/storefront/internal/catalog"
	"github.com/scottwells/storefront/internal/controller"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// writeError maps a core error to its HTTP status and user-facing
// message. Permission rejections get the specific remediation hint so
// they are never mistaken for generic failures.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, backend.ErrPermission):
		jsonError(w, http.StatusForbidden,
			"write access is disabled: enable insert/delete for public in the backend's access policies")
	case errors.Is(err, backend.ErrConnectivity):
		jsonError(w, http.StatusBadGateway, "backend unreachable, try again")
	case errors.Is(err, controller.ErrAdminRequired):
		jsonError(w, http.StatusUnauthorized, "admin session required")
	case errors.Is(err, controller.ErrConfirmationRequired):
		jsonError(w, http.StatusBadRequest, "delete must be confirmed")
	case errors.Is(err, controller.ErrInvalidCredentials):
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
