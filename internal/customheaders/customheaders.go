package customheaders

import (
	"bufio"
	"errors"
	"net/http"
	"net/textproto"
	"strings"
)

var errInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// Parse turns "Name: value" strings, as passed to -header, into a header map
// with canonical keys
func Parse(customHeaders []string) (http.Header, error) {
	headers := http.Header{}

	for _, keyValue := range customHeaders {
		tp := textproto.NewReader(bufio.NewReader(strings.NewReader(strings.TrimSpace(keyValue) + "\n\n")))

		parsed, err := tp.ReadMIMEHeader()
		if err != nil || len(parsed) == 0 {
			return nil, errInvalidHeaderParameter
		}

		for k, v := range parsed {
			k = textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(k))
			headers[k] = append(headers[k], v...)
		}
	}

	return headers, nil
}

// NewMiddleware adds headers to every response written by handler
func NewMiddleware(handler http.Handler, headers http.Header) http.Handler {
	if len(headers) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range headers {
			for _, value := range v {
				w.Header().Add(k, value)
			}
		}

		handler.ServeHTTP(w, r)
	})
}
