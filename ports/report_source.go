package ports

import (
	"context"
	"net/url"

	"gofarma/domain/report"
)

// ReportSource provides read-only access to the pharmacy API.
// Implementations return errors carrying the internal/errors codes
// TRANSPORT_ERROR, EMPTY_RESULT and MALFORMED_PAYLOAD.
type ReportSource interface {
	// FetchRows returns the rows of a report endpoint, possibly none.
	FetchRows(ctx context.Context, endpoint string, params url.Values) ([]report.Row, error)

	// FetchRecord returns a single object endpoint such as the dashboard summary.
	FetchRecord(ctx context.Context, endpoint string, params url.Values) (report.Row, error)
}
