// Package security provides the path sandbox that confines all file
// operations to a single root directory.
//
// The sandbox prevents path traversal attacks (CWE-22): every requested
// path is normalized and checked against the root before any filesystem
// syscall touches the target, so a rejected path never leaks information
// about files outside the root.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrAccessDenied is returned when a resolved path escapes the sandbox root.
// Callers check it with errors.Is; the message deliberately omits the
// offending path to avoid leaking filesystem layout to clients.
var ErrAccessDenied = errors.New("access denied: path is outside the sandbox root")

// Sandbox resolves relative paths against a fixed root directory and
// rejects any resolution that escapes it.
type Sandbox struct {
	root string
}

// NewSandbox creates a sandbox rooted at dir, creating the directory if
// it does not exist. The root is fixed for the lifetime of the sandbox.
func NewSandbox(dir string) (*Sandbox, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve sandbox root: %w", err)
	}

	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("create sandbox root: %w", err)
	}

	// Resolve symlinks in the root itself (e.g. /var -> /private/var on
	// macOS) so that prefix comparisons against resolved paths hold.
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve sandbox root symlinks: %w", err)
	}

	return &Sandbox{root: real}, nil
}

// Root returns the absolute sandbox root directory.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve joins rel to the sandbox root, normalizes it, and verifies the
// result stays inside the root. An empty rel resolves to the root itself.
// Returns ErrAccessDenied when normalization escapes the root.
//
// The lexical containment check runs before any syscall on the target, so
// traversal attempts fail without probing the filesystem outside the root.
func (s *Sandbox) Resolve(rel string) (string, error) {
	// Join applies filepath.Clean, collapsing "." and ".." segments.
	abs := filepath.Join(s.root, rel)
	if !s.contains(abs) {
		return "", ErrAccessDenied
	}

	// Resolve symlinks to prevent escaping the root through a link that
	// was planted inside it.
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if os.IsNotExist(err) {
			// Target does not exist yet; the lexical check above already
			// passed, which is all a pending write needs.
			return abs, nil
		}
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}

	if !s.contains(real) {
		return "", ErrAccessDenied
	}

	return real, nil
}

func (s *Sandbox) contains(path string) bool {
	return path == s.root || strings.HasPrefix(path, s.root+string(filepath.Separator))
}
