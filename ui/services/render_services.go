package services

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"time"

	"gofarma/domain/catalog"
	"gofarma/domain/core"
	"gofarma/domain/report"
	"gofarma/ui/templates/fragments"
)

// Alert kinds, matching the alert-<kind> CSS classes
const (
	AlertInfo  = "info"
	AlertError = "error"
)

// User-facing messages
const (
	NoDataMessage     = "No se encontraron datos para este reporte."
	ReportErrorPrefix = "Error al cargar reporte: "
)

// DefaultTimeLayout renders generation times as dd/mm/yyyy, hh:mm:ss.
const DefaultTimeLayout = "02/01/2006, 15:04:05"

const renderFailFragment = `<div class="alert alert-error">Error al generar el reporte</div>`

// Alert is the view model of status/alert.
type Alert struct {
	Kind    string
	Message string
}

type reportView struct {
	Title     string
	Generated string
	Table     *report.Table
	Alert     Alert
}

// MenuGroup is one titled block of the report menu.
type MenuGroup struct {
	Name    string
	Entries []catalog.Entry
}

// IndexData is the view model of the full page.
type IndexData struct {
	AppName    string
	Groups     []MenuGroup
	Categories []string
}

// RenderOptions configures a RenderService. Zero fields take defaults.
type RenderOptions struct {
	Report          report.Config
	Clock           core.Clock
	TimestampLayout string
	Location        *time.Location
}

// RenderService turns report data into HTML fragments.
type RenderService struct {
	templates *template.Template
	cfg       report.Config
	clock     core.Clock
	layout    string
	location  *time.Location
}

func NewRenderService(templates *template.Template, opts RenderOptions) *RenderService {
	s := &RenderService{
		templates: templates,
		cfg:       opts.Report,
		clock:     opts.Clock,
		layout:    opts.TimestampLayout,
		location:  opts.Location,
	}
	if s.cfg.Labels == nil {
		s.cfg.Labels = report.DefaultLabels
	}
	if s.clock == nil {
		s.clock = core.SystemClock
	}
	if s.layout == "" {
		s.layout = DefaultTimeLayout
	}
	if s.location == nil {
		s.location = time.Local
	}
	return s
}

// ReportConfig returns the labeling and formatting configuration in use.
func (s *RenderService) ReportConfig() report.Config {
	return s.cfg
}

// BuildTable builds the table view model stamped with the current time.
func (s *RenderService) BuildTable(rows []report.Row, title string) *report.Table {
	return report.Build(rows, title, s.clock.Now(), s.cfg)
}

// FormatTimestamp renders a generation time in the configured layout and zone.
func (s *RenderService) FormatTimestamp(t time.Time) string {
	return t.In(s.location).Format(s.layout)
}

// RenderReport writes the report fragment for rows. Empty rows produce the
// informational alert instead of a table.
func (s *RenderService) RenderReport(w io.Writer, rows []report.Row, title string) error {
	return s.RenderTable(w, s.BuildTable(rows, title))
}

// RenderTable writes the fragment for an already built table.
func (s *RenderService) RenderTable(w io.Writer, t *report.Table) error {
	return s.templates.ExecuteTemplate(w, fragments.ReportBody, s.view(t))
}

// ReportHTML returns the report fragment as a string. Template failures are
// logged and replaced by an error alert.
func (s *RenderService) ReportHTML(rows []report.Row, title string) string {
	var buf bytes.Buffer
	if err := s.RenderReport(&buf, rows, title); err != nil {
		log.Printf("[RenderService] Failed to render report %q: %v", title, err)
		return renderFailFragment
	}
	return buf.String()
}

func (s *RenderService) view(t *report.Table) reportView {
	return reportView{
		Title:     t.Title,
		Generated: s.FormatTimestamp(t.GeneratedAt),
		Table:     t,
		Alert:     Alert{Kind: AlertInfo, Message: NoDataMessage},
	}
}

// RenderAlert writes an alert fragment.
func (s *RenderService) RenderAlert(w io.Writer, kind, message string) error {
	return s.templates.ExecuteTemplate(w, fragments.StatusAlert, Alert{Kind: kind, Message: message})
}

// RenderSummary writes the dashboard stat cards for a summary record.
func (s *RenderService) RenderSummary(w io.Writer, record report.Row) error {
	data := struct {
		Cards []report.Card
	}{
		Cards: report.BuildCards(record, s.cfg),
	}
	return s.templates.ExecuteTemplate(w, fragments.SummaryCards, data)
}

// RenderMedications writes the filtered medication list. total is the number
// of rows before filtering.
func (s *RenderService) RenderMedications(w io.Writer, rows []report.Row, total int, filter report.RowFilter) error {
	data := struct {
		Shown  int
		Total  int
		Filter report.RowFilter
		Report reportView
	}{
		Shown:  len(rows),
		Total:  total,
		Filter: filter,
		Report: s.view(s.BuildTable(rows, "Medicamentos")),
	}
	return s.templates.ExecuteTemplate(w, fragments.MedicationResults, data)
}

// RenderPage writes the full index page.
func (s *RenderService) RenderPage(w io.Writer, data IndexData) error {
	return s.templates.ExecuteTemplate(w, fragments.IndexPage, data)
}
