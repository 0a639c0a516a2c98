package constants

import "strings"

// AllowedExtensions holds the workbook formats accepted for run imports.
var AllowedExtensions = map[string]struct{}{
	"xlsx": {},
	"xlsm": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a file extension is an accepted workbook format.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
