package services

import (
	"context"
	"io"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// TaxonomyReaderSvc defines read operations for the reference taxonomy
type TaxonomyReaderSvc interface {
	// GetTaxonomyByCode performs an exact, case-insensitive lookup.
	GetTaxonomyByCode(ctx context.Context, code string) (*domain.TaxonomyNode, error)

	// SearchTaxonomy matches term against code and title; limit is clamped.
	SearchTaxonomy(ctx context.Context, term string, limit int) ([]domain.TaxonomyNode, error)
}

// TaxonomyImporterSvc defines bulk loading of the reference taxonomy
type TaxonomyImporterSvc interface {
	// ImportTaxonomy reads a delimited source with a header row and upserts every
	// usable row in one transaction.
	ImportTaxonomy(ctx context.Context, source io.Reader, opts domain.TaxonomyImportOptions) (*domain.TaxonomyImportResult, error)
}

// TaxonomySvcFacade combines all taxonomy-related service interfaces
type TaxonomySvcFacade interface {
	TaxonomyReaderSvc
	TaxonomyImporterSvc
}
