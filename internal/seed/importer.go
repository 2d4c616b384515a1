// Package seed imports authored documents into a hex store. Seed files are
// markdown with YAML frontmatter (or plain JSON documents); the frontmatter
// carries the hex record and the body becomes its text content.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/loam"

	"github.com/galaxy-co-ai/hive-mcp/internal/logging"
	"github.com/galaxy-co-ai/hive-mcp/pkg/ports"
)

// Importer reads a seed directory and writes validated hexes to a store.
type Importer struct {
	store  ports.HexStore
	logger *slog.Logger
	clock  func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger used to report skipped documents.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) {
		if now != nil {
			i.clock = now
		}
	}
}

// New creates an importer writing to the given store.
func New(store ports.HexStore, opts ...Option) *Importer {
	i := &Importer{
		store:  store,
		logger: logging.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Report summarizes one import run.
type Report struct {
	Imported []string
	Skipped  []string
}

// ImportDir reads every document under dir and saves the valid ones.
// Documents that fail to convert or validate are skipped and logged; two
// documents claiming the same id abort the run, since that is an authoring
// error no ordering rule should paper over.
func (i *Importer) ImportDir(ctx context.Context, dir string) (*Report, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid seed path: %w", err)
	}

	// Strict mode keeps numeric types consistent across the JSON and
	// markdown adapters; read-only because seeding never writes back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("opening seed directory: %w", err)
	}
	typed := loam.NewTypedRepository[HexMetadata](repo)

	docs, err := typed.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing seed documents: %w", err)
	}

	now := i.clock().UTC()
	report := &Report{}
	seen := make(map[string]string)

	for _, doc := range docs {
		hex, err := doc.Data.toHex(doc.ID, doc.Content, now)
		if err != nil {
			i.logger.Warn("skipping seed document", "doc", doc.ID, "error", err)
			report.Skipped = append(report.Skipped, doc.ID)
			continue
		}
		if err := hex.Validate(); err != nil {
			i.logger.Warn("skipping invalid seed document", "doc", doc.ID, "error", err)
			report.Skipped = append(report.Skipped, doc.ID)
			continue
		}

		if prior, dup := seen[hex.ID]; dup {
			return nil, fmt.Errorf("hex id %q defined in both %q and %q", hex.ID, prior, doc.ID)
		}
		seen[hex.ID] = doc.ID

		if err := i.store.Save(ctx, hex); err != nil {
			return nil, fmt.Errorf("saving hex %s: %w", hex.ID, err)
		}
		report.Imported = append(report.Imported, hex.ID)
		i.logger.Debug("seeded hex", "hex", hex.ID, "doc", doc.ID)
	}

	return report, nil
}
