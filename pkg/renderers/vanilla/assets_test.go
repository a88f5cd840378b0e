package vanilla

import (
	"io/fs"
	"strings"
	"testing"
)

func TestAssetsFSServesStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	for _, class := range chromeClasses() {
		if !strings.Contains(string(data), "."+class.(string)) {
			t.Errorf("stylesheet missing rules for %q", class)
		}
	}
}

func TestTemplatesFSBundlesPages(t *testing.T) {
	for _, name := range []string{"layout.tmpl", "listings.tmpl", "role.tmpl", "form.tmpl", "field.tmpl", "not_found.tmpl"} {
		if _, err := fs.Stat(TemplatesFS(), name); err != nil {
			t.Errorf("template %s: %v", name, err)
		}
	}
}

func TestDescriptionHTMLEscapesAndBreaksLines(t *testing.T) {
	got := descriptionHTML("Line <b>one</b>\nLine & two")
	want := "Line one<br>\nLine &amp; two"
	if got != want {
		t.Fatalf("descriptionHTML = %q, want %q", got, want)
	}
}

func TestIconSVGFallsBackToBriefcase(t *testing.T) {
	if iconSVG("unknown") != iconSVG("briefcase") {
		t.Fatal("expected unknown icon to fall back to briefcase")
	}
	if !strings.Contains(iconSVG("code"), "<svg") {
		t.Fatal("expected named icon to render svg")
	}
}
