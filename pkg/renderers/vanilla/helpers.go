package vanilla

import (
	"strconv"
	"strings"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + trimmed
}

func errorID(name string) string {
	if id := controlID(name); id != "" {
		return id + "-error"
	}
	return ""
}

func optionID(name string, idx int) string {
	return controlID(name) + "-" + strconv.Itoa(idx)
}
