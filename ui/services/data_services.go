package services

import (
	"context"
	"log"
	"net/url"

	"gofarma/domain/catalog"
	"gofarma/domain/report"
	"gofarma/internal/errors"
	"gofarma/ports"
)

// Endpoints outside the report catalog
const (
	SummaryEndpoint     = "reportes/resumen-general"
	MedicationsEndpoint = "medicamentos"
)

// DataService resolves catalog reports against the pharmacy API.
type DataService struct {
	source  ports.ReportSource
	catalog *catalog.Catalog
}

func NewDataService(source ports.ReportSource, cat *catalog.Catalog) *DataService {
	return &DataService{
		source:  source,
		catalog: cat,
	}
}

// Catalog returns the report catalog
func (s *DataService) Catalog() *catalog.Catalog {
	return s.catalog
}

// MenuGroups returns the catalog arranged for the report menu.
func (s *DataService) MenuGroups() []MenuGroup {
	groups := make([]MenuGroup, 0)
	for _, name := range s.catalog.Groups() {
		groups = append(groups, MenuGroup{Name: name, Entries: s.catalog.ByGroup(name)})
	}
	return groups
}

// FetchReport looks up slug and fetches its rows. overrides replace the
// catalog's default parameters.
func (s *DataService) FetchReport(ctx context.Context, slug string, overrides url.Values) (catalog.Entry, []report.Row, error) {
	entry, err := s.catalog.Lookup(slug)
	if err != nil {
		return catalog.Entry{}, nil, err
	}
	rows, err := s.source.FetchRows(ctx, entry.Endpoint, entry.Query(overrides))
	if err != nil {
		return entry, nil, errors.Wrapf(err, "report %s", slug)
	}
	log.Printf("[DataService] Report %s: %d rows", slug, len(rows))
	return entry, rows, nil
}

// FetchSummary fetches the dashboard summary record.
func (s *DataService) FetchSummary(ctx context.Context) (report.Row, error) {
	return s.source.FetchRecord(ctx, SummaryEndpoint, nil)
}

// FetchMedications fetches the full medication list. Filtering is done by
// the caller with report.FilterRows.
func (s *DataService) FetchMedications(ctx context.Context) ([]report.Row, error) {
	return s.source.FetchRows(ctx, MedicationsEndpoint, nil)
}
