package interfaces

import (
	"context"
	"io"
)

// ArtifactStorage abstracts where generated pages land. The filesystem
// implementation lives in internal/generator; hosts can supply object-store
// backed providers instead.
type ArtifactStorage interface {
	// EnsureDir creates the directory (and parents) when it does not exist.
	EnsureDir(ctx context.Context, path string) error
	// WriteFile persists a single artifact relative to the storage root.
	WriteFile(ctx context.Context, req WriteFileRequest) error
	// Remove deletes the artifact or directory tree at path. Missing paths
	// are not an error.
	Remove(ctx context.Context, path string) error
}

// WriteFileRequest describes a file write routed through an ArtifactStorage.
type WriteFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	ContentType string
	// Checksum carries the hex encoded SHA-256 of Content so providers can
	// record or verify artifacts without re-reading them.
	Checksum string
	Metadata map[string]string
}
