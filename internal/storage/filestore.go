package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrEmptyUpload = errors.New("uploaded file is empty")
	ErrNotFound    = errors.New("file not found")
	ErrInvalidRef  = errors.New("invalid file reference")
)

// Store writes uploaded blobs under Root and hands out references below
// the Public URL prefix ("/pdfs", "/video-files"). Reads are served by the
// static file server, not by the store.
type Store struct {
	Root   string
	Public string
}

func New(root, public string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store root: %w", err)
	}
	return &Store{Root: root, Public: strings.TrimSuffix(public, "/")}, nil
}

// Save stores the payload as <unix-seconds>_<originalName> and returns the
// public URL. A zero-length payload is rejected before the file is created,
// and again after the write in case the transport truncated the body.
// Same-second uploads of the same original name overwrite each other.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(contents) == 0 {
		return "", ErrEmptyUpload
	}

	filename := fmt.Sprintf("%d_%s", time.Now().Unix(), originalName)
	path := filepath.Join(s.Root, filename)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat after write: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(path)
		return "", ErrEmptyUpload
	}

	return s.Public + "/" + filename, nil
}

// Delete unlinks the file a public URL refers to. The URL must carry the
// store's prefix and resolve to a bare filename, so a crafted reference
// cannot escape Root.
func (s *Store) Delete(url string) error {
	filename, err := s.filename(url)
	if err != nil {
		return err
	}

	path := filepath.Join(s.Root, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", filename, err)
	}
	return nil
}

// Owns reports whether the URL points into this store's namespace.
func (s *Store) Owns(url string) bool {
	return strings.HasPrefix(url, s.Public+"/")
}

func (s *Store) filename(url string) (string, error) {
	if !s.Owns(url) {
		return "", ErrInvalidRef
	}
	name := strings.TrimPrefix(url, s.Public+"/")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", ErrInvalidRef
	}
	return name, nil
}
