package handlers

import (
	"net/http"

	"github.com/rs/cors"

	"gitlab.com/remotefs/remotefs/internal/config"
)

var corsHandler = cors.New(cors.Options{
	AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete},
	AllowedHeaders: []string{"Content-Type"},
	// preflights still reach the method table, which answers OPTIONS with 405
	OptionsPassthrough: true,
})

// CorsHandler lets browsers on other origins use the method table unless
// cross-origin requests are disabled
func CorsHandler(config *config.Config, handler http.Handler) http.Handler {
	if !config.General.DisableCrossOriginRequests {
		handler = corsHandler.Handler(handler)
	}

	return handler
}
