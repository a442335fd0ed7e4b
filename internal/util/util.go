// Package util provides common utility functions used across dragondata.
package util

import (
	"path/filepath"
	"strings"
)

// TrimQuotes removes leading and trailing double quotes from a string.
// Paths pasted from Windows Explorer arrive quoted.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// HasExtensionFold reports whether name ends in ext, ignoring case.
// ext includes the leading dot.
func HasExtensionFold(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// DisplayName returns the base name of a file path without its extension.
func DisplayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
