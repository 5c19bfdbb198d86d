package httpmetrics

import (
	"strings"
)

// NormalizePath collapses user names and message ids so request metrics keep
// a bounded label set.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 {
		switch parts[0] {
		case "users":
			parts[1] = "{username}"
		case "messages":
			if isNumeric(parts[1]) {
				parts[1] = "{id}"
			} else {
				parts[1] = "{param}"
			}
		}
	}
	if len(parts) > 3 {
		parts = append(parts[:3], "{rest}")
	}

	return "/" + strings.Join(parts, "/")
}

func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
