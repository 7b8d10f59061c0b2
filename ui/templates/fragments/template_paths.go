// Package fragments provides template name constants for organized template management
package fragments

// Template names, as declared with {{define}}
const (
	// Report templates
	ReportTable = "report/table"
	ReportCell  = "report/cell"
	ReportBody  = "report/body"

	// Status templates
	StatusAlert = "status/alert"

	// Dashboard templates
	SummaryCards = "dashboard/summary_cards"

	// Medication templates
	MedicationResults = "medications/results"

	// Layout templates
	IndexPage  = "layout/index"
	ReportMenu = "layout/report_menu"
)

// GetAllTemplateNames returns every template the render service expects to find
func GetAllTemplateNames() []string {
	return []string{
		ReportTable,
		ReportCell,
		ReportBody,
		StatusAlert,
		SummaryCards,
		MedicationResults,
		IndexPage,
		ReportMenu,
	}
}
