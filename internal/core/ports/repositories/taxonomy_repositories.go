package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// TaxonomyReader defines read operations for the reference taxonomy
type TaxonomyReader interface {
	// FindTaxonomyByCode performs a case-insensitive exact lookup.
	FindTaxonomyByCode(ctx context.Context, code string) (*domain.TaxonomyNode, error)

	// SearchTaxonomy matches term case-insensitively against code and title, ordered by code.
	SearchTaxonomy(ctx context.Context, term string, limit int) ([]domain.TaxonomyNode, error)
}

// TaxonomyWriter defines write operations for the reference taxonomy
type TaxonomyWriter interface {
	// UpsertTaxonomyNode inserts or updates a node keyed on code and reports whether a new row was created.
	UpsertTaxonomyNode(ctx context.Context, node domain.TaxonomyNode) (inserted bool, err error)
}

// TaxonomyRepositoryFacade combines all taxonomy-related repository interfaces
type TaxonomyRepositoryFacade interface {
	TaxonomyReader
	TaxonomyWriter
}
