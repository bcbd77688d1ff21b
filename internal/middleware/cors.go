package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows any origin to drive game sessions. There are no credentials
// to protect: sessions are anonymous.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
