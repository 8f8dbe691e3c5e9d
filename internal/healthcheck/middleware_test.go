package healthcheck_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"gitlab.com/remotefs/remotefs/internal/healthcheck"
	"gitlab.com/remotefs/remotefs/internal/testhelpers"
)

func TestHealthCheckMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		statusPath string
		method     string
		path       string
		body       string
	}{
		{
			name:       "Not a healthcheck request",
			statusPath: "/-/healthcheck",
			method:     http.MethodGet,
			path:       "/foo/bar",
			body:       "Hello from inner handler",
		},
		{
			name:       "Healthcheck request",
			statusPath: "/-/healthcheck",
			method:     http.MethodGet,
			path:       "/-/healthcheck",
			body:       "success\n",
		},
		{
			name:       "Write to the healthcheck path",
			statusPath: "/-/healthcheck",
			method:     http.MethodPut,
			path:       "/-/healthcheck",
			body:       "Hello from inner handler",
		},
		{
			name:   "Disabled healthcheck",
			method: http.MethodGet,
			path:   "/",
			body:   "Hello from inner handler",
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Hello from inner handler"))
	})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			middleware := healthcheck.NewMiddleware(handler, tc.statusPath)

			code, body := testhelpers.PerformRequest(t, middleware, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, http.StatusOK, code)
			require.Equal(t, tc.body, body)
		})
	}
}
