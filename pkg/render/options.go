package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-careers/pkg/application"
)

// RenderOptions carry per-request data layered on top of a Page.
type RenderOptions struct {
	// Values pre-populates controls keyed by field name: strings for
	// text-like fields, []string for checkbox-groups. File inputs are never
	// pre-populated.
	Values map[string]any
	// Errors holds the inline message per invalid field.
	Errors map[string]string
	// Status is the line shown under the form.
	Status application.Status
	// Dialog is the confirmation shown after a successful submission.
	Dialog *application.SuccessDialog
	// Hidden lists extra hidden inputs (submission token, ...).
	Hidden map[string]string
	// Submitting renders the submit control disabled.
	Submitting bool
	// Theme carries resolved tokens and asset URLs.
	Theme *theme.RendererConfig
}
