package http

import (
	"net/http"
	"strings"
)

// TokenVerifier validates admin tokens issued at login. Satisfied by
// services.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) error
}

// RequireAdmin gates mutating admin routes on a Bearer token.
func RequireAdmin(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing admin token"})
				return
			}

			if err := verifier.VerifyToken(token); err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid admin token"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows the client to be served from a separate origin during
// development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
