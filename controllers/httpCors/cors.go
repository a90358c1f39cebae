package httpCors

import (
	"os"
	"strings"

	"github.com/rs/cors"
)

// CorsSettings builds the CORS wrapper for the whole API. Allowed origins
// come from CORS_ORIGINS (comma separated); default is the local frontend.
func CorsSettings() *cors.Cors {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
}
