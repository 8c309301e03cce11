package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

const fileNotFoundCode = "POST_FILE_NOT_FOUND"

// LoaderConfig configures how post files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where post sources live.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into posts with metadata.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// ReadSource returns the raw bytes of a single post file. A missing file is
// reported as a not-found error the caller can branch on; it is never
// silently converted into empty content.
func (l *Loader) ReadSource(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerrors.Wrap(err, goerrors.CategoryNotFound,
				fmt.Sprintf("post file %s does not exist", rel)).
				WithTextCode(fileNotFoundCode)
		}
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	return data, nil
}

// LoadFile reads and parses a single post.
func (l *Loader) LoadFile(ctx context.Context, path string) (*interfaces.Post, error) {
	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}

	data, err := l.ReadSource(ctx, rel)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	post, err := BuildPost(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	post.Checksum = sum[:]

	return post, nil
}

// LoadDirectory discovers post files under dir and returns parsed posts in
// path order.
func (l *Loader) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.Post, error) {
	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.ToSlash(filepath.Clean(root))

	var posts []*interfaces.Post
	err = fs.WalkDir(l.fs, root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if entry.IsDir() {
			if !l.recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		matched, matchErr := filepath.Match(l.pattern, entry.Name())
		if matchErr != nil {
			return fmt.Errorf("markdown loader pattern %q: %w", l.pattern, matchErr)
		}
		if !matched {
			return nil
		}

		post, loadErr := l.LoadFile(ctx, path)
		if loadErr != nil {
			return loadErr
		}
		posts = append(posts, post)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// IsNotFound reports whether the error indicates a missing post file.
func IsNotFound(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

func (l *Loader) makeRelative(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ".", nil
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(l.basePath, clean)
		if err != nil {
			return "", fmt.Errorf("markdown loader: path %s outside base %s: %w", path, l.basePath, err)
		}
		clean = rel
	}
	return filepath.ToSlash(clean), nil
}
