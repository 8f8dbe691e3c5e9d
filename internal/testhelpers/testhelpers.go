package testhelpers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// PerformRequest runs r through handler and returns the status code and body
func PerformRequest(t *testing.T, handler http.Handler, r *http.Request) (int, string) {
	t.Helper()

	ww := httptest.NewRecorder()
	handler.ServeHTTP(ww, r)
	res := ww.Result()
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, string(b)
}

// AssertLogContains checks that wantLogEntry is contained in at least one of the log entries
func AssertLogContains(t *testing.T, wantLogEntry string, entries []*logrus.Entry) {
	t.Helper()

	if wantLogEntry != "" {
		messages := make([]string, len(entries))
		for k, entry := range entries {
			messages[k] = entry.Message
		}

		require.Contains(t, messages, wantLogEntry)
	}
}

// Getwd must return current working directory
func Getwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	return wd
}

// Chdir changes into path for the rest of the test
func Chdir(t *testing.T, path string) {
	t.Helper()

	cwd := Getwd(t)
	require.NoError(t, os.Chdir(path), "Cannot Chdir")

	t.Cleanup(func() {
		require.NoError(t, os.Chdir(cwd), "Cannot Chdir in cleanup")
	})
}
