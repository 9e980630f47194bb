package storage

import (
	"errors"

	"github.com/localstore/localstore/internal/security"
)

// Sentinel errors for the storage operations. Callers check them with
// errors.Is; messages are wrapped with operation context using %w.
var (
	// ErrInvalidURI indicates a resource URI outside the storage://local/ scheme.
	ErrInvalidURI = errors.New("invalid URI")

	// ErrAccessDenied indicates a path that resolves outside the sandbox root.
	// Aliased from the security package so errors.Is works at either layer.
	ErrAccessDenied = security.ErrAccessDenied

	// ErrNotFound indicates a missing resource or a missing parent directory.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a semantically invalid request, such as an
	// empty path or a write targeting a directory.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWriteFailed wraps any underlying I/O failure during a file write.
	ErrWriteFailed = errors.New("write failed")
)
