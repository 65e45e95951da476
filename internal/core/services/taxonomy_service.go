package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/metrics"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	// DefaultTaxonomyDelimiter separates columns when the import names no delimiter.
	DefaultTaxonomyDelimiter = ';'
	// DefaultTaxonomySearchMaxLimit caps search results.
	DefaultTaxonomySearchMaxLimit = 200
)

// taxonomyService implements the TaxonomySvcFacade interface
type taxonomyService struct {
	BaseService
	taxonomyRepo   portsrepo.TaxonomyRepositoryFacade
	txManager      portsrepo.TransactionManager
	metrics        *metrics.LedgerMetrics
	searchMaxLimit int
}

// TaxonomyServiceOption is a functional option for configuring the taxonomy service
type TaxonomyServiceOption func(*taxonomyService)

// WithTaxonomySearchMaxLimit lowers (or raises) the cap applied to search limits.
func WithTaxonomySearchMaxLimit(limit int) TaxonomyServiceOption {
	return func(s *taxonomyService) {
		if limit > 0 {
			s.searchMaxLimit = limit
		}
	}
}

// WithTaxonomyMetrics records import outcomes.
func WithTaxonomyMetrics(m *metrics.LedgerMetrics) TaxonomyServiceOption {
	return func(s *taxonomyService) {
		s.metrics = m
	}
}

// NewTaxonomyService creates a new taxonomy service with the provided options
func NewTaxonomyService(repo portsrepo.TaxonomyRepositoryFacade, txManager portsrepo.TransactionManager, options ...TaxonomyServiceOption) portssvc.TaxonomySvcFacade {
	svc := &taxonomyService{
		taxonomyRepo:   repo,
		txManager:      txManager,
		searchMaxLimit: DefaultTaxonomySearchMaxLimit,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TaxonomySvcFacade = (*taxonomyService)(nil)

// GetTaxonomyByCode performs an exact, case-insensitive lookup.
func (s *taxonomyService) GetTaxonomyByCode(ctx context.Context, code string) (*domain.TaxonomyNode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperrors.NewValidationError("taxonomy code is required")
	}
	node, err := s.taxonomyRepo.FindTaxonomyByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up taxonomy code", slog.String("taxonomy_code", code))
		}
		return nil, err
	}
	return node, nil
}

// SearchTaxonomy matches term against code and title with a clamped limit.
func (s *taxonomyService) SearchTaxonomy(ctx context.Context, term string, limit int) ([]domain.TaxonomyNode, error) {
	limit = pagination.ClampLimit(limit, 1, s.searchMaxLimit)
	nodes, err := s.taxonomyRepo.SearchTaxonomy(ctx, strings.TrimSpace(term), limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to search taxonomy", slog.String("term", term))
		return nil, fmt.Errorf("failed to search taxonomy: %w", err)
	}
	if nodes == nil {
		nodes = []domain.TaxonomyNode{}
	}
	return nodes, nil
}

// ImportTaxonomy reads a delimited source whose first row is a header and upserts every
// usable data row. The header is validated before any row is written; all writes share
// one transaction, so a failing row leaves nothing committed.
func (s *taxonomyService) ImportTaxonomy(ctx context.Context, source io.Reader, opts domain.TaxonomyImportOptions) (*domain.TaxonomyImportResult, error) {
	batchID := uuid.NewString()
	logger := s.GetLogger(ctx).With(slog.String("import_batch_id", batchID))

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = DefaultTaxonomyDelimiter
	}

	reader := csv.NewReader(source)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	headerRow, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: source is empty", apperrors.ErrImport)
		}
		return nil, fmt.Errorf("%w: cannot read header: %v", apperrors.ErrImport, err)
	}
	header := domain.MapTaxonomyHeader(headerRow)
	if missing := header.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return nil, fmt.Errorf("%w: header has no column for %s", apperrors.ErrImport, strings.Join(names, ", "))
	}

	result := domain.TaxonomyImportResult{}
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%w: %v", apperrors.ErrImport, err)
			}

			node, ok := domain.NormalizeTaxonomyRow(row, header, opts.VersionTag)
			if !ok {
				result.Skipped++
				continue
			}

			inserted, err := s.taxonomyRepo.UpsertTaxonomyNode(ctx, node)
			if err != nil {
				line, _ := reader.FieldPos(0)
				return fmt.Errorf("taxonomy row at line %d (code %s): %w", line, node.Code, err)
			}
			if inserted {
				result.Inserted++
			} else {
				result.Updated++
			}
		}
	})
	if err != nil {
		logger.Error("Taxonomy import rolled back", slog.String("error", err.Error()))
		return nil, err
	}

	s.metrics.TaxonomyImported(result)
	logger.Info("Taxonomy import committed",
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped))
	return &result, nil
}
