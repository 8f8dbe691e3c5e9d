package router

import (
	"net/http"

	"github.com/gorilla/mux"
)

type middleware = func(http.Handler) http.Handler

// New routes every path and method to handler. The given middlewares are
// executed in the given order, wrapping handler.
//
// Paths are not cleaned: "/../x" must reach handler untouched so that it
// is rejected instead of being redirected inside the root.
func New(handler http.Handler, middlewares ...middleware) http.Handler {
	r := mux.NewRouter().SkipClean(true)
	r.PathPrefix("/").Handler(handler)

	var h http.Handler = r
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return h
}
