package errortracking

import (
	"net/http"

	"gitlab.com/gitlab-org/labkit/errortracking"
)

const loggerName = "remotefs"

// Initialize configures Sentry reporting. It is a no-op when dsn is empty.
func Initialize(dsn, environment, version string) error {
	if dsn == "" {
		return nil
	}

	return errortracking.Initialize(
		errortracking.WithSentryDSN(dsn),
		errortracking.WithVersion(version),
		errortracking.WithLoggerName(loggerName),
		errortracking.WithSentryEnvironment(environment),
	)
}

// CaptureErrWithReqAndStackTrace reports err together with the request that caused it
func CaptureErrWithReqAndStackTrace(err error, r *http.Request, fields ...errortracking.CaptureOption) {
	opts := append(
		fields,
		errortracking.WithContext(r.Context()),
		errortracking.WithRequest(r),
		errortracking.WithStackTrace(),
	)

	errortracking.Capture(err, opts...)
}

// CaptureErrWithStackTrace reports err outside of a request
func CaptureErrWithStackTrace(err error, fields ...errortracking.CaptureOption) {
	opts := append(
		fields,
		errortracking.WithStackTrace(),
	)

	errortracking.Capture(err, opts...)
}

// WithField attaches a key/value pair to a captured error
func WithField(key, value string) errortracking.CaptureOption {
	return errortracking.WithField(key, value)
}
