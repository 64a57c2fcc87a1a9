package utils

import (
	"strings"

	"github.com/sealkit/skseal/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// AbbreviateFingerprint shortens a SHA256 fingerprint for display.
// "SHA256:gp0oPXPa25P2..." keeps the first 12 characters after the prefix.
func AbbreviateFingerprint(fp string) string {
	const prefix = "SHA256:"
	rest, ok := strings.CutPrefix(fp, prefix)
	if !ok || len(rest) <= 12 {
		return fp
	}
	return prefix + rest[:12] + "…"
}
