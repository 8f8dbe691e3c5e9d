package healthcheck

import (
	"net/http"
)

// NewMiddleware answers GET and HEAD requests for statusPath itself. Every
// other request, including writes to statusPath, reaches handler.
func NewMiddleware(handler http.Handler, statusPath string) http.Handler {
	if statusPath == "" {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == statusPath && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
			w.Header().Set("Cache-Control", "no-store")
			w.Write([]byte("success\n"))

			return
		}

		handler.ServeHTTP(w, r)
	})
}
