package generator

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const manifestNotFoundCode = "BUILD_RECORD_NOT_FOUND"

// BuildRecord tracks one generated page so later builds can skip sources
// whose content has not changed.
type BuildRecord struct {
	bun.BaseModel `bun:"table:build_records,alias:br"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug       string    `bun:"slug,notnull,unique" json:"slug"`
	SourcePath string    `bun:"source_path,notnull" json:"source_path"`
	OutputPath string    `bun:"output_path,notnull" json:"output_path"`
	Checksum   string    `bun:"checksum,notnull" json:"checksum"`
	RenderedAt time.Time `bun:"rendered_at,nullzero,default:current_timestamp" json:"rendered_at"`
}

// NewBuildRecordRepository creates a repository for build records keyed by slug.
func NewBuildRecordRepository(db *bun.DB) repository.Repository[*BuildRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*BuildRecord]{
		NewRecord:          func() *BuildRecord { return &BuildRecord{} },
		GetID:              func(record *BuildRecord) uuid.UUID { return record.ID },
		SetID:              func(record *BuildRecord, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(record *BuildRecord) string { return record.Slug },
	})
}

// ManifestStore persists build records in the manifest database.
type ManifestStore struct {
	db   *bun.DB
	repo repository.Repository[*BuildRecord]
}

// NewManifestStore wraps db with a build-record repository.
func NewManifestStore(db *bun.DB) *ManifestStore {
	return &ManifestStore{
		db:   db,
		repo: NewBuildRecordRepository(db),
	}
}

// EnsureSchema creates the build_records table when it does not exist.
func (s *ManifestStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*BuildRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("manifest: ensure schema: %w", err)
	}
	return nil
}

// GetBySlug returns the record for slug, or a not-found error.
func (s *ManifestStore) GetBySlug(ctx context.Context, slug string) (*BuildRecord, error) {
	record, err := s.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapManifestError(err, slug)
	}
	return record, nil
}

// Record upserts the build record for record.Slug.
func (s *ManifestStore) Record(ctx context.Context, record *BuildRecord) (*BuildRecord, error) {
	existing, err := s.GetBySlug(ctx, record.Slug)
	if err != nil {
		if !IsManifestNotFound(err) {
			return nil, err
		}
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		if record.RenderedAt.IsZero() {
			record.RenderedAt = time.Now().UTC()
		}
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, fmt.Errorf("manifest: create %s: %w", record.Slug, err)
		}
		return created, nil
	}

	existing.SourcePath = record.SourcePath
	existing.OutputPath = record.OutputPath
	existing.Checksum = record.Checksum
	existing.RenderedAt = time.Now().UTC()
	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("manifest: update %s: %w", record.Slug, err)
	}
	return updated, nil
}

// List returns every build record.
func (s *ManifestStore) List(ctx context.Context) ([]*BuildRecord, error) {
	records, _, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("manifest: list: %w", err)
	}
	return records, nil
}

// IsManifestNotFound reports whether err marks a missing build record.
func IsManifestNotFound(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryNotFound)
}

func mapManifestError(err error, slug string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return goerrors.Wrap(err, goerrors.CategoryNotFound,
			fmt.Sprintf("build record %s not found", slug)).
			WithTextCode(manifestNotFoundCode)
	}
	return fmt.Errorf("manifest: lookup %s: %w", slug, err)
}
