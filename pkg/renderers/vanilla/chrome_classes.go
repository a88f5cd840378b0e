package vanilla

// ChromeClass is a semantic CSS class applied by the page templates.
type ChromeClass string

const (
	ClassPage    ChromeClass = "careers-page"
	ClassCard    ChromeClass = "careers-card"
	ClassForm    ChromeClass = "careers-form"
	ClassField   ChromeClass = "careers-field"
	ClassError   ChromeClass = "careers-error"
	ClassStatus  ChromeClass = "careers-status"
	ClassDialog  ChromeClass = "careers-dialog"
	ClassActions ChromeClass = "careers-actions"
)

// chromeClasses is exposed to templates as the `classes` global.
func chromeClasses() map[string]any {
	return map[string]any{
		"page":    string(ClassPage),
		"card":    string(ClassCard),
		"form":    string(ClassForm),
		"field":   string(ClassField),
		"error":   string(ClassError),
		"status":  string(ClassStatus),
		"dialog":  string(ClassDialog),
		"actions": string(ClassActions),
	}
}
