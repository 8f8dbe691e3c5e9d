package dispatch

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gitlab.com/remotefs/remotefs/internal/errortracking"
	"gitlab.com/remotefs/remotefs/internal/httperrors"
	"gitlab.com/remotefs/remotefs/internal/logging"
	"gitlab.com/remotefs/remotefs/internal/response"
	"gitlab.com/remotefs/remotefs/internal/stream"
	"gitlab.com/remotefs/remotefs/metrics"
)

// Handler turns a request into a response. Errors carrying an explicit
// status (*httperrors.Error) are rendered verbatim, any other error becomes
// a 500.
type Handler func(r *http.Request) (*response.Response, error)

// Table maps request methods to their handlers
type Table map[string]Handler

// otherMethod labels the metrics of every method missing from the table,
// so clients cannot create series with made up verbs
const otherMethod = "other"

// Dispatcher routes requests to a Handler by method
type Dispatcher struct {
	table    Table
	fallback Handler
}

// New returns a Dispatcher serving table. Methods missing from table are
// served by fallback. The table is copied, later changes to it are ignored.
func New(table Table, fallback Handler) *Dispatcher {
	t := make(Table, len(table))
	for method, handler := range table {
		t[method] = handler
	}

	return &Dispatcher{table: t, fallback: fallback}
}

// handler returns the Handler for method and the method label to report it under
func (d *Dispatcher) handler(method string) (Handler, string) {
	if h, ok := d.table[method]; ok {
		return h, method
	}

	return d.fallback, otherMethod
}

func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, methodLabel := d.handler(r.Method)

	resp, err := handler(r)
	if err != nil {
		resp = errorResponse(r, err)
	} else if resp == nil {
		resp = response.NoContent()
	}

	metrics.DispatchResponses.WithLabelValues(methodLabel, strconv.Itoa(resp.StatusCode())).Inc()

	render(w, r, resp)
}

func errorResponse(r *http.Request, err error) *response.Response {
	if herr, ok := httperrors.As(err); ok {
		return response.Text(herr.Status, herr.Body)
	}

	logging.LogRequest(r).WithError(err).Error("request failed")
	errortracking.CaptureErrWithReqAndStackTrace(err, r)

	return response.Text(http.StatusInternalServerError, err.Error())
}

func render(w http.ResponseWriter, r *http.Request, resp *response.Response) {
	w.Header().Set("Content-Type", resp.Type())
	w.WriteHeader(resp.StatusCode())

	switch {
	case resp.Stream != nil:
		// headers are gone, failures from here on can only be reported
		if _, err := stream.Copy(r.Context(), w, resp.Stream); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}

			logging.LogRequest(r).WithError(err).Error("error streaming content")
			errortracking.CaptureErrWithReqAndStackTrace(err, r)
		}
	case resp.Names != nil:
		write(w, r, []byte(strings.Join(resp.Names, "\n")))
	default:
		write(w, r, resp.Data)
	}
}

func write(w http.ResponseWriter, r *http.Request, body []byte) {
	if len(body) == 0 {
		return
	}

	if _, err := w.Write(body); err != nil {
		logging.LogRequest(r).WithError(err).Debug("error writing response body")
	}
}
