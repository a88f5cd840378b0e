package careers

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "careers.css")
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), ".careers-form") {
		t.Fatalf("expected stylesheet to style the application form")
	}
}

func TestEmbeddedTemplatesIncludePages(t *testing.T) {
	for _, name := range []string{"layout.tmpl", "listings.tmpl", "role.tmpl", "form.tmpl", "field.tmpl", "not_found.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
	}
}

func TestNewComponentServesDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	rec := httptest.NewRecorder()
	NewComponent().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/careers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, listing := range c.Listings() {
		if !strings.Contains(rec.Body.String(), listing.Title) {
			t.Fatalf("expected listing %q on the page", listing.Title)
		}
	}
}
