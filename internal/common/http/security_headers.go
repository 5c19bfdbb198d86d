package http

import "net/http"

const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none';"

func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Security-Policy", apiContentSecurityPolicy)

		next.ServeHTTP(w, r)
	})
}
