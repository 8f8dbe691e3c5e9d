//go:build tools
// +build tools

// Package tools pins the versions of the binaries used to lint, test and
// regenerate mocks, e.g. `go run github.com/golang/mock/mockgen` for the
// go:generate directives.
package tools

import (
	_ "github.com/golang/mock/mockgen"
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "gotest.tools/gotestsum"
)
