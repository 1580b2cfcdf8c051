package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahcohcat/maitre/config"
)

const sessionName = "maitre-session"

var (
	store        *sessions.CookieStore
	passwordHash string
)

// Init wires the cookie store from the server configuration.
func Init(cfg *config.ServerConfig) {
	store = sessions.NewCookieStore([]byte(cfg.SessionSecret))
	passwordHash = cfg.PasswordHash
}

// HashPassword produces a bcrypt hash suitable for server.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// LoginHandler checks the submitted password against the configured
// bcrypt hash and marks the session authenticated.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if passwordHash == "" {
		http.Error(w, "Login disabled: no password configured", http.StatusForbidden)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	password := r.FormValue("password")

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		http.Error(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	session, _ := store.Get(r, sessionName)
	session.Values["authenticated"] = true
	if err := session.Save(r, w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := store.Get(r, sessionName)
	session.Values["authenticated"] = false
	session.Save(r, w)
	w.WriteHeader(http.StatusNoContent)
}

// Middleware rejects unauthenticated requests. When no password is
// configured the server runs open, matching the single-user desktop
// setup the docs describe.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if passwordHash == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, _ := store.Get(r, sessionName)
		if authed, ok := session.Values["authenticated"].(bool); !ok || !authed {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
