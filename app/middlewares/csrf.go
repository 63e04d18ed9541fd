package middlewares

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

const CSRFHeader = "X-CSRF-Token"

// CSRF protects unsafe methods with gorilla/csrf. Clients read the token
// from the X-CSRF-Token response header and echo it back on writes.
func CSRF(rdr *render.Render, key []byte, secure bool) mux.MiddlewareFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.RequestHeader(CSRFHeader),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rdr.JSON(w, http.StatusForbidden, map[string]string{"error": "Invalid CSRF token"})
		})),
	)

	return func(next http.Handler) http.Handler {
		return protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(CSRFHeader, csrf.Token(r))
			next.ServeHTTP(w, r)
		}))
	}
}
