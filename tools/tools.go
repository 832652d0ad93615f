//go:build tools

// Package tools pins development tool dependencies in go.mod.
//
// mockgen regenerates internal/mocks from the ports in internal/core:
//
//	go generate ./internal/mocks
package tools

import (
	_ "go.uber.org/mock/mockgen"
)
