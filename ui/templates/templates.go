// Package templates embeds the HTML templates of the report UI.
package templates

import (
	"embed"
	"fmt"
	"html/template"

	"gofarma/ui/templates/fragments"
)

//go:embed fragments/*/*.html
var files embed.FS

// Parse parses every embedded template and checks the expected names exist.
func Parse(funcs template.FuncMap) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(files, "fragments/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for _, name := range fragments.GetAllTemplateNames() {
		if t.Lookup(name) == nil {
			return nil, fmt.Errorf("template %q is not defined", name)
		}
	}
	return t, nil
}
