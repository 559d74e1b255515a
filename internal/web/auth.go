package web

import (
	"log/slog"
	"net/http"

	"github.com/scottwells/storefront/internal/auth"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Controller.OpenLoginDialog()
	s.Templates.Render(w, "login.html", &PageData{Title: "Admin Access"})
}

// LoginSubmit handles POST /login. Failures are reported generically,
// never revealing which field was wrong.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin Access",
			Error: "Enter a username and password.",
		})
		return
	}

	if err := s.Controller.Login(r.Context(), username, password); err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin Access",
			Error: "Invalid username or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, username)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Admin Access",
			Error: "Login failed. Please try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	})

	slog.Info("operator logged in", "user", username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles POST /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Controller.Logout(r.Context())
	clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
