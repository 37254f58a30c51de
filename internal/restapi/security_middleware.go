package restapi

import (
	"net/http"
	"strings"
)

const (
	apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none';"
	// Pages load the map client from the Mapbox CDN and fetch tiles from it.
	pageContentSecurityPolicy = "default-src 'self'; " +
		"script-src 'self' https://api.mapbox.com; " +
		"style-src 'self' 'unsafe-inline' https://api.mapbox.com; " +
		"img-src 'self' data: blob: https://*.mapbox.com; " +
		"connect-src 'self' https://*.mapbox.com https://events.mapbox.com; " +
		"worker-src blob:; frame-ancestors 'none';"
)

var baseSecurityHeaders = map[string]string{
	"X-Content-Type-Options":    "nosniff",
	"X-Frame-Options":           "DENY",
	"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	"Referrer-Policy":           "strict-origin-when-cross-origin",
}

// corsHeaders let other map front ends read the JSON endpoints.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":   "*",
	"Access-Control-Allow-Methods":  "GET, OPTIONS",
	"Access-Control-Allow-Headers":  "Content-Type, " + RequestIDHeader,
	"Access-Control-Expose-Headers": RequestIDHeader + ", Retry-After, " + NoDataHeader,
	"Access-Control-Max-Age":        "86400",
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// WithSecurityHeaders wraps handler with the security header middleware.
func (api *RestAPI) WithSecurityHeaders(handler http.Handler) http.Handler {
	return securityHeaders(handler)
}

// securityHeaders sets the headers every response carries. API paths get a
// locked-down CSP and CORS for cross-origin callers; preflights stop here.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		for name, value := range baseSecurityHeaders {
			h.Set(name, value)
		}

		if !isAPIPath(r.URL.Path) {
			h.Set("Content-Security-Policy", pageContentSecurityPolicy)
			next.ServeHTTP(w, r)
			return
		}

		h.Set("Content-Security-Policy", apiContentSecurityPolicy)
		if r.Header.Get("Origin") != "" {
			for name, value := range corsHeaders {
				h.Set(name, value)
			}
		}

		if r.Method == http.MethodOptions {
			h.Set("Allow", "GET, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
