package vanilla

import "strings"

const iconOpen = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">`

var icons = map[string]string{
	"target":    iconOpen + `<circle cx="12" cy="12" r="10"></circle><circle cx="12" cy="12" r="6"></circle><circle cx="12" cy="12" r="2"></circle></svg>`,
	"code":      iconOpen + `<polyline points="16 18 22 12 16 6"></polyline><polyline points="8 6 2 12 8 18"></polyline></svg>`,
	"layers":    iconOpen + `<path d="M12 2 2 7l10 5 10-5-10-5z"></path><path d="m2 17 10 5 10-5"></path><path d="m2 12 10 5 10-5"></path></svg>`,
	"briefcase": iconOpen + `<rect x="2" y="7" width="20" height="14" rx="2"></rect><path d="M16 21V5a2 2 0 0 0-2-2h-4a2 2 0 0 0-2 2v16"></path></svg>`,
	"check":     iconOpen + `<path d="M20 6 9 17l-5-5"></path></svg>`,
}

// iconSVG returns sanitised markup for a named icon, falling back to the
// briefcase. Names that look like inline SVG are sanitised and used as is.
func iconSVG(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "<svg") {
		if cleaned := sanitizeIcon(name); cleaned != "" {
			return cleaned
		}
	}
	if markup, ok := icons[strings.ToLower(name)]; ok {
		return sanitizeIcon(markup)
	}
	return sanitizeIcon(icons["briefcase"])
}
