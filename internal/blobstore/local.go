package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore persists blobs on the local filesystem under a root directory.
// Objects are written to a tmp area first and renamed into place, so a key
// never becomes visible half-written. MakePublic widens the file mode from
// owner-only to world-readable, mirroring the public-object flip of a cloud
// bucket; PublicURL joins the configured base URL with the key.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates a local store rooted at root, issuing URLs under
// baseURL (e.g. "https://storage.example.com/bucket").
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, fmt.Errorf("blob store root is required")
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("blob store base URL is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(abs, ".tmp"), 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: abs, baseURL: baseURL}, nil
}

// Put streams r into the object named by key. The write goes through a temp
// file and a rename; the object lands owner-readable only and stays private
// until MakePublic. The declared content type is stored in a sidecar so a
// serving layer can replay it.
func (s *LocalStore) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	if s == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if r == nil {
		return fmt.Errorf("reader is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	dst, err := s.pathFromKey(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Join(s.root, ".tmp"), "put-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		cleanup()
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		cleanup()
		return err
	}

	if ct := strings.TrimSpace(contentType); ct != "" {
		if err := os.WriteFile(dst+".ctype", []byte(ct), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// MakePublic flips the object named by key to world-readable. The object
// must have been written first.
func (s *LocalStore) MakePublic(ctx context.Context, key string) error {
	if s == nil {
		return fmt.Errorf("blob store is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.pathFromKey(key)
	if err != nil {
		return err
	}
	return os.Chmod(p, 0o644)
}

// PublicURL returns the deterministic public URL for key.
func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// pathFromKey maps a slash-separated object key to an absolute path under
// root, rejecting empty keys and traversal outside the root.
func (s *LocalStore) pathFromKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("blob key is required")
	}
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
