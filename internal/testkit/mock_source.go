package testkit

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"gofarma/domain/report"
)

// MockReportSource is a testify mock of ports.ReportSource
type MockReportSource struct {
	mock.Mock
}

func (m *MockReportSource) FetchRows(ctx context.Context, endpoint string, params url.Values) ([]report.Row, error) {
	args := m.Called(ctx, endpoint, params)
	rows, _ := args.Get(0).([]report.Row)
	return rows, args.Error(1)
}

func (m *MockReportSource) FetchRecord(ctx context.Context, endpoint string, params url.Values) (report.Row, error) {
	args := m.Called(ctx, endpoint, params)
	record, _ := args.Get(0).(report.Row)
	return record, args.Error(1)
}
