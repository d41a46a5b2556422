package middleware

import (
	"net/http"
)

// HTMX marks requests coming from htmx so handlers/middlewares can adapt responses.
// Responses vary on HX-Request because fragments and full pages share URLs.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		w.Header().Add("Vary", "HX-Request")
		ctx := WithHTMX(r.Context(), is)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HTMXTarget returns the id of the element htmx will swap, if any.
func HTMXTarget(r *http.Request) string {
	return r.Header.Get("HX-Target")
}
