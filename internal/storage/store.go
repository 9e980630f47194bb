// Package storage implements the sandboxed document store behind the MCP
// server: URI-addressed whole-file reads and full-replace file writes, both
// confined to a single root directory by the security sandbox.
package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/localstore/localstore/internal/security"
)

// Scheme is the URI prefix for all resources served by the store.
const Scheme = "storage://local/"

// RootURI identifies the root document collection.
const RootURI = Scheme

// URITemplate describes the family of resource URIs the store resolves.
// Reserved expansion ({+path}) so paths containing "/" match the template.
const URITemplate = "storage://local/{+path}"

// MIMEType is the content type for all resources in the store.
const MIMEType = "text/plain"

// Descriptor describes a resource or resource template for discovery
// listings. It carries no live filesystem state.
type Descriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// WriteResult reports a completed file write. ModifiedAt comes from a
// post-write stat of the file, not from the request.
type WriteResult struct {
	Path         string    `json:"path"`
	BytesWritten int       `json:"bytes_written"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Store provides sandboxed read and write access to local files.
// It holds no cross-call mutable state; the filesystem is the only shared
// resource, so a single Store is safe for concurrent use.
type Store struct {
	sandbox *security.Sandbox
	logger  *slog.Logger
}

// NewStore creates a store over the given sandbox.
func NewStore(sandbox *security.Sandbox, logger *slog.Logger) (*Store, error) {
	if sandbox == nil {
		return nil, fmt.Errorf("sandbox is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Store{sandbox: sandbox, logger: logger}, nil
}

// Root returns the absolute sandbox root directory.
func (s *Store) Root() string {
	return s.sandbox.Root()
}

// Resources returns the static discovery listing: one entry describing the
// root document collection. This is a description, not a directory walk.
func (s *Store) Resources() []Descriptor {
	return []Descriptor{
		{
			URI:         RootURI,
			Name:        "Local Document Store",
			Description: "A local document store",
			MIMEType:    MIMEType,
		},
	}
}

// Templates returns the static resource template listing.
func (s *Store) Templates() []Descriptor {
	return []Descriptor{
		{
			URI:         URITemplate,
			Name:        "Local Document Store",
			Description: "A local document store",
			MIMEType:    MIMEType,
		},
	}
}

// Read returns the full content of the resource identified by uri.
// The URI must carry the storage://local/ scheme (ErrInvalidURI otherwise);
// the remainder is percent-decoded and resolved through the sandbox.
// A missing file reports ErrNotFound.
func (s *Store) Read(uri string) (string, error) {
	if !strings.HasPrefix(uri, Scheme) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rel, err := url.PathUnescape(strings.TrimPrefix(uri, Scheme))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}

	path, err := s.sandbox.Resolve(rel)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path confined by the sandbox above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, rel)
		}
		return "", fmt.Errorf("read resource %q: %w", rel, err)
	}

	s.logger.Debug("resource read", "path", rel, "bytes", len(data))
	return string(data), nil
}

// Write replaces the file at rel with content, creating it if absent.
// The parent directory must already exist; only the sandbox root itself is
// ever auto-created. The returned WriteResult echoes rel and reports the
// byte count written and the modification time from a post-write stat.
func (s *Store) Write(rel, content string) (WriteResult, error) {
	if rel == "" {
		return WriteResult{}, fmt.Errorf("%w: path is required", ErrInvalidArgument)
	}

	path, err := s.sandbox.Resolve(rel)
	if err != nil {
		return WriteResult{}, err
	}

	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		return WriteResult{}, fmt.Errorf("%w: %q is a directory", ErrInvalidArgument, rel)
	}

	parent := filepath.Dir(path)
	if info, statErr := os.Stat(parent); statErr != nil {
		if os.IsNotExist(statErr) {
			return WriteResult{}, fmt.Errorf("%w: parent directory of %q does not exist", ErrNotFound, rel)
		}
		return WriteResult{}, fmt.Errorf("%w: %v", ErrWriteFailed, statErr)
	} else if !info.IsDir() {
		return WriteResult{}, fmt.Errorf("%w: parent of %q is not a directory", ErrInvalidArgument, rel)
	}

	// Full replacement, no append semantics.
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil { // #nosec G304 -- sandboxed path
		return WriteResult{}, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	// Success is reported only once the post-write stat confirms the effect.
	info, err := os.Stat(path)
	if err != nil {
		return WriteResult{}, fmt.Errorf("%w: post-write stat: %v", ErrWriteFailed, err)
	}

	s.logger.Info("file written", "path", rel, "bytes", len(content))
	return WriteResult{
		Path:         rel,
		BytesWritten: len(content),
		ModifiedAt:   info.ModTime(),
	}, nil
}
