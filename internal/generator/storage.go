package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// NewFilesystemStorage returns an ArtifactStorage that writes build outputs
// under root. Paths in requests are slash separated and relative to root.
func NewFilesystemStorage(root string) interfaces.ArtifactStorage {
	return &filesystemStorage{root: root}
}

type filesystemStorage struct {
	root string
}

func (s *filesystemStorage) EnsureDir(_ context.Context, path string) error {
	full, err := s.abs(path)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0o755)
}

func (s *filesystemStorage) WriteFile(_ context.Context, req interfaces.WriteFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}

	full, err := s.abs(req.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	file, err := os.Create(full)
	if err != nil {
		return err
	}
	defer file.Close()
	if _, err := io.Copy(file, req.Content); err != nil {
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	return nil
}

func (s *filesystemStorage) Remove(_ context.Context, path string) error {
	full, err := s.abs(path)
	if err != nil {
		return err
	}
	err = os.RemoveAll(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// abs resolves rel against the storage root. Absolute paths and paths whose
// cleaned form climbs above the root are rejected so artifacts can never land
// outside the output directory.
func (s *filesystemStorage) abs(rel string) (string, error) {
	if filepath.IsAbs(rel) || filepath.IsAbs(filepath.FromSlash(rel)) {
		return "", fmt.Errorf("generator: absolute path %q not allowed", rel)
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "" || rel == "." {
		return s.root, nil
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("generator: path %q escapes storage root", rel)
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// noopStorage discards writes; used when builds run without a destination.
type noopStorage struct{}

func (noopStorage) EnsureDir(context.Context, string) error { return nil }

func (noopStorage) WriteFile(context.Context, interfaces.WriteFileRequest) error { return nil }

func (noopStorage) Remove(context.Context, string) error { return nil }
