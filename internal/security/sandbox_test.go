package security

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	sandbox, err := NewSandbox(t.TempDir())
	if err != nil {
		t.Fatalf("NewSandbox() unexpected error: %v", err)
	}
	return sandbox
}

func TestNewSandbox_CreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	sandbox, err := NewSandbox(dir)
	if err != nil {
		t.Fatalf("NewSandbox() unexpected error: %v", err)
	}

	info, err := os.Stat(sandbox.Root())
	if err != nil {
		t.Fatalf("sandbox root was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("sandbox root is not a directory: %s", sandbox.Root())
	}
}

func TestSandbox_Resolve(t *testing.T) {
	sandbox := newTestSandbox(t)

	tests := []struct {
		name      string
		rel       string
		shouldErr bool
		reason    string
	}{
		{
			name:      "simple file",
			rel:       "test.txt",
			shouldErr: false,
			reason:    "plain relative path should resolve inside the root",
		},
		{
			name:      "nested file",
			rel:       "a/b/c.txt",
			shouldErr: false,
			reason:    "nested relative path should resolve inside the root",
		},
		{
			name:      "empty path resolves to root",
			rel:       "",
			shouldErr: false,
			reason:    "empty path is the root collection itself",
		},
		{
			name:      "dot path resolves to root",
			rel:       ".",
			shouldErr: false,
			reason:    "current-directory path is the root itself",
		},
		{
			name:      "traversal out of root",
			rel:       "../escape.txt",
			shouldErr: true,
			reason:    "single parent traversal must be rejected",
		},
		{
			name:      "deep traversal",
			rel:       "../../../etc/passwd",
			shouldErr: true,
			reason:    "deep parent traversal must be rejected",
		},
		{
			name:      "traversal hidden mid-path",
			rel:       "a/../../escape.txt",
			shouldErr: true,
			reason:    "traversal after a normal segment must be rejected",
		},
		{
			name:      "traversal that returns inside",
			rel:       "a/../b.txt",
			shouldErr: false,
			reason:    "traversal that stays inside the root is fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sandbox.Resolve(tt.rel)
			if tt.shouldErr {
				if err == nil {
					t.Fatalf("Resolve(%q) expected error: %s", tt.rel, tt.reason)
				}
				if !errors.Is(err, ErrAccessDenied) {
					t.Errorf("Resolve(%q) error = %v, want ErrAccessDenied", tt.rel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v (%s)", tt.rel, err, tt.reason)
			}
			if got != sandbox.Root() && !strings.HasPrefix(got, sandbox.Root()+string(filepath.Separator)) {
				t.Errorf("Resolve(%q) = %q, escapes root %q", tt.rel, got, sandbox.Root())
			}
		})
	}
}

func TestSandbox_Resolve_EmptyPathIsRoot(t *testing.T) {
	sandbox := newTestSandbox(t)

	got, err := sandbox.Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") unexpected error: %v", err)
	}
	if got != sandbox.Root() {
		t.Errorf("Resolve(\"\") = %q, want root %q", got, sandbox.Root())
	}
}

func TestSandbox_Resolve_SymlinkEscape(t *testing.T) {
	sandbox := newTestSandbox(t)

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.txt")
	if err := os.WriteFile(secret, []byte("secret"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	link := filepath.Join(sandbox.Root(), "link.txt")
	if err := os.Symlink(secret, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	if _, err := sandbox.Resolve("link.txt"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("Resolve(symlink out of root) error = %v, want ErrAccessDenied", err)
	}
}

func TestSandbox_Resolve_ErrorDoesNotLeakPath(t *testing.T) {
	sandbox := newTestSandbox(t)

	_, err := sandbox.Resolve("../../../etc/passwd")
	if err == nil {
		t.Fatal("expected error for traversal path")
	}
	if strings.Contains(err.Error(), "/etc/passwd") {
		t.Errorf("error message leaks the requested path: %s", err.Error())
	}
}
