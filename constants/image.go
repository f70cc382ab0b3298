package constants

import "strings"

// NormalizeFormat lowercases an image format name and folds "jpg" into "jpeg".
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if f == "jpg" {
		return "jpeg"
	}
	return f
}
