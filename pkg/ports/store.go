package ports

import (
	"context"

	"github.com/galaxy-co-ai/hive-mcp/pkg/domain"
)

// HexStore defines the interface for persisting hex records. Implementations
// must hand out isolated copies: a caller mutating a returned hex must never
// affect stored state.
type HexStore interface {
	// Get retrieves a hex by id.
	// Returns domain.ErrHexNotFound if the id resolves to nothing usable
	// (absent, or present but failing the record schema).
	Get(ctx context.Context, id string) (*domain.Hex, error)

	// Save persists the hex (upsert, full overwrite).
	Save(ctx context.Context, hex *domain.Hex) error

	// Delete removes the hex, reporting whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// ListAll returns every readable hex. Records failing the schema are
	// logged and skipped, never failing the whole call.
	ListAll(ctx context.Context) ([]*domain.Hex, error)

	// ListIDs returns every stored hex id.
	ListIDs(ctx context.Context) ([]string, error)
}
