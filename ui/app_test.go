package ui

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gofarma/adapters/api"
	"gofarma/domain/catalog"
	"gofarma/domain/core"
	"gofarma/domain/report"
	"gofarma/internal/errors"
	"gofarma/internal/session"
	"gofarma/internal/testkit"
	sessionmw "gofarma/ui/middleware"
	"gofarma/ui/services"
	"gofarma/ui/templates"
)

var fixedNow = time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)

func newTestApp(t *testing.T, source *testkit.MockReportSource) *App {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	tmpl, err := templates.Parse(nil)
	require.NoError(t, err)

	render := services.NewRenderService(tmpl, services.RenderOptions{
		Report:   report.DefaultConfig(),
		Clock:    core.FixedClock(fixedNow),
		Location: time.UTC,
	})
	return NewApp(Config{AppName: "Botica Central"}, services.NewDataService(source, cat), render, nil)
}

func get(t *testing.T, app *App, target string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func medicationRows() []report.Row {
	return []report.Row{
		report.NewRow(
			report.Field{Key: "nombre", Value: report.Text("Paracetamol 500mg")},
			report.Field{Key: "categoria", Value: report.Text("Analgésicos")},
			report.Field{Key: "precio_venta", Value: report.Number("2.5")},
		),
		report.NewRow(
			report.Field{Key: "nombre", Value: report.Text("Amoxicilina 500mg")},
			report.Field{Key: "categoria", Value: report.Text("Antibióticos")},
			report.Field{Key: "precio_venta", Value: report.Number("12.5")},
		),
	}
}

func TestReportFragment(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, "reportes/inventario", mock.Anything).Return(medicationRows(), nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/reportes/inventario", map[string]string{"HX-Request": "true"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<table")
	assert.Contains(t, body, "Paracetamol 500mg")
	assert.Contains(t, body, "S/. 12.50")
	assert.Contains(t, body, "15/10/2025, 09:30:00")
	source.AssertExpectations(t)
}

func TestReportFragmentForwardsQuery(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, "reportes/bajo-stock", mock.MatchedBy(func(q url.Values) bool {
		return q.Get("limite") == "5"
	})).Return(medicationRows(), nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/reportes/bajo-stock?limite=5", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	source.AssertExpectations(t)
}

func TestReportFragmentErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "unsuccessful estado",
			err:      errors.EmptyResult(testkit.FailureMessage),
			contains: []string{"alert-info", services.NoDataMessage},
		},
		{
			name:     "transport failure",
			err:      errors.Transport("API request failed", io.ErrUnexpectedEOF),
			contains: []string{"alert-error", "Error al cargar reporte: API request failed"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			source := &testkit.MockReportSource{}
			source.On("FetchRows", mock.Anything, mock.Anything, mock.Anything).Return(nil, test.err)
			app := newTestApp(t, source)

			rec := get(t, app, "/reportes/ingresos", nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			for _, s := range test.contains {
				assert.Contains(t, rec.Body.String(), s)
			}
			assert.NotContains(t, rec.Body.String(), "<table")
		})
	}
}

func TestReportFragmentEmptyRows(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, mock.Anything, mock.Anything).Return([]report.Row{}, nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/reportes/sin-stock", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), services.NoDataMessage)
	assert.NotContains(t, rec.Body.String(), "<table")
}

func TestReportUnknownSlug(t *testing.T) {
	source := &testkit.MockReportSource{}
	app := newTestApp(t, source)

	rec := get(t, app, "/reportes/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Reporte no encontrado: no-existe")
	source.AssertNotCalled(t, "FetchRows", mock.Anything, mock.Anything, mock.Anything)
}

func TestSupersededFragmentIsDropped(t *testing.T) {
	source := &testkit.MockReportSource{}
	app := newTestApp(t, source)
	sid := core.NewSessionID()

	var newer *session.Ticket
	source.On("FetchRows", mock.Anything, "reportes/inventario", mock.Anything).
		Run(func(args mock.Arguments) {
			// a second click on the same container while this one is in flight
			newer = app.tracker.Begin(context.Background(), sid, TargetReports)
		}).
		Return(medicationRows(), nil)

	req := httptest.NewRequest(http.MethodGet, "/reportes/inventario", nil)
	req.AddCookie(&http.Cookie{Name: sessionmw.SessionCookie, Value: sid.String()})
	req.Header.Set("HX-Target", TargetReports)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Empty(t, rec.Body.String())

	require.NotNil(t, newer)
	assert.True(t, newer.Current())
	newer.Done()
	assert.Equal(t, 0, app.tracker.InFlight())
}

func TestOtherTargetIsNotSuperseded(t *testing.T) {
	source := &testkit.MockReportSource{}
	app := newTestApp(t, source)
	sid := core.NewSessionID()

	source.On("FetchRecord", mock.Anything, services.SummaryEndpoint, mock.Anything).
		Run(func(args mock.Arguments) {
			app.tracker.Begin(context.Background(), sid, TargetReports).Done()
		}).
		Return(report.NewRow(report.Field{Key: "total_clientes", Value: report.Int(312)}), nil)

	req := httptest.NewRequest(http.MethodGet, "/resumen", nil)
	req.AddCookie(&http.Cookie{Name: sessionmw.SessionCookie, Value: sid.String()})
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "312")
}

func TestExportCSV(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, "reportes/inventario", mock.MatchedBy(func(q url.Values) bool {
		return q.Get("format") == ""
	})).Return(medicationRows(), nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/reportes/inventario/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="inventario`)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `.csv"`)
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Paracetamol 500mg")
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		rows   []report.Row
		status int
	}{
		{"bad format", "/reportes/inventario/export?format=pdf", nil, medicationRows(), http.StatusBadRequest},
		{"unknown report", "/reportes/no-existe/export?format=csv", nil, nil, http.StatusNotFound},
		{"empty report", "/reportes/inventario/export?format=csv", nil, []report.Row{}, http.StatusNotFound},
		{"no data estado", "/reportes/inventario/export?format=csv", errors.EmptyResult(""), nil, http.StatusNotFound},
		{"api down", "/reportes/inventario/export?format=xlsx", errors.Transport("API request failed", nil), nil, http.StatusBadGateway},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			source := &testkit.MockReportSource{}
			source.On("FetchRows", mock.Anything, mock.Anything, mock.Anything).Return(test.rows, test.err).Maybe()
			app := newTestApp(t, source)

			rec := get(t, app, test.path, nil)
			assert.Equal(t, test.status, rec.Code)
		})
	}
}

func TestSummaryFragment(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRecord", mock.Anything, services.SummaryEndpoint, mock.Anything).Return(report.NewRow(
		report.Field{Key: "medicamentos_activos", Value: report.Int(120)},
		report.Field{Key: "ingresos_mes_actual", Value: report.Number("15840.5")},
	), nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/resumen", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "120")
	assert.Contains(t, rec.Body.String(), "S/. 15840.50")
}

func TestSummaryFragmentError(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRecord", mock.Anything, mock.Anything, mock.Anything).
		Return(report.Row{}, errors.Transport("API request failed", nil))
	app := newTestApp(t, source)

	rec := get(t, app, "/resumen", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alert-error")
	assert.Contains(t, rec.Body.String(), "Error: API request failed")
}

func TestMedicationsFilter(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, services.MedicationsEndpoint, mock.Anything).Return(medicationRows(), nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/medicamentos?categoria=antibioticos", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1 de 2 medicamentos")
	assert.Contains(t, body, "Amoxicilina 500mg")
	assert.NotContains(t, body, "Paracetamol 500mg")
}

func TestIndexPage(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, services.MedicationsEndpoint, mock.Anything).Return(medicationRows(), nil)
	app := newTestApp(t, source)

	rec := get(t, app, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Botica Central")
	assert.Contains(t, body, `id="`+TargetReports+`"`)
	assert.Contains(t, body, "Antibióticos")
	assert.Contains(t, body, `hx-get="/reportes/inventario"`)
}

func TestIndexPageWithoutAPI(t *testing.T) {
	source := &testkit.MockReportSource{}
	source.On("FetchRows", mock.Anything, services.MedicationsEndpoint, mock.Anything).
		Return(nil, errors.Transport("API request failed", nil))
	app := newTestApp(t, source)

	rec := get(t, app, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Botica Central")
}

func TestHealthAndStatic(t *testing.T) {
	app := newTestApp(t, &testkit.MockReportSource{})

	rec := get(t, app, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = get(t, app, "/static/css/gofarma.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}

func TestSessionCookieIssuedOnce(t *testing.T) {
	app := newTestApp(t, &testkit.MockReportSource{})

	rec := get(t, app, "/healthz", nil)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionmw.SessionCookie, cookies[0].Name)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	assert.Empty(t, rec.Result().Cookies())
}

// End to end against the fake pharmacy API.
func TestReportAgainstFakeAPI(t *testing.T) {
	fake, err := testkit.NewFakeAPI(testkit.FakeAPIConfig{})
	require.NoError(t, err)
	server := fake.Start()
	defer server.Close()

	client := api.NewClient(api.ClientConfig{BaseURL: server.URL + "/api", Timeout: 5 * time.Second})
	defer client.Close()

	cat, err := catalog.Default()
	require.NoError(t, err)
	tmpl, err := templates.Parse(nil)
	require.NoError(t, err)
	render := services.NewRenderService(tmpl, services.RenderOptions{
		Report:   report.DefaultConfig(),
		Clock:    core.FixedClock(fixedNow),
		Location: time.UTC,
	})
	app := NewApp(Config{}, services.NewDataService(client, cat), render, nil)

	rec := get(t, app, "/reportes/inventario", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Paracetamol 500mg")
	assert.Less(t, strings.Index(body, "Medicamento"), strings.Index(body, "Stock"))

	rec = get(t, app, "/reportes/sin-stock", nil)
	assert.Contains(t, rec.Body.String(), services.NoDataMessage)
	assert.Equal(t, 1, fake.Requests("/api/reportes/sin-stock"))
}
