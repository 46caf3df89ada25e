package vanilla

import (
	"io/fs"
	"strings"
	"testing"
)

func TestAssetsFSServesStylesheetAndGridScript(t *testing.T) {
	css, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if !strings.Contains(string(css), ".nm-grid") {
		t.Fatalf("expected stylesheet to style the grid")
	}

	script, err := fs.ReadFile(AssetsFS(), GridScriptName)
	if err != nil {
		t.Fatalf("read grid script: %v", err)
	}
	for _, want := range []string{"data-base-grid", "updated_grid", "mahadasha", "antardasha"} {
		if !strings.Contains(string(script), want) {
			t.Fatalf("expected grid script to reference %q", want)
		}
	}
}

func TestTemplatesFSIncludesPartials(t *testing.T) {
	for _, name := range []string{
		"templates/index.tmpl",
		"templates/partials/form.tmpl",
		"templates/partials/grid.tmpl",
		"templates/partials/periods.tmpl",
		"templates/partials/yearly.tmpl",
		"templates/partials/missing.tmpl",
		"templates/partials/summary.tmpl",
	} {
		if _, err := fs.Stat(TemplatesFS(), name); err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
	}
}
