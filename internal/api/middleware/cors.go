package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler разрешает запросы панели администратора с allowedOrigins
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", UserIDHeader, RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
