package constants

import (
	"path/filepath"
	"strings"
)

// FileFormat groups file extensions by processing route.
type FileFormat string

const (
	PDF   FileFormat = "PDF"
	EXCEL FileFormat = "EXCEL"
)

var extToFormat = map[string]FileFormat{
	"pdf":  PDF,
	"xlsx": EXCEL,
	"xls":  EXCEL,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat returns the processing format for a file extension,
// or "" when the extension is not supported.
func MapExtToFormat(ext string) FileFormat {
	return extToFormat[NormalizeExt(ext)]
}

// FormatForFile is MapExtToFormat applied to a file name or path.
func FormatForFile(name string) FileFormat {
	return MapExtToFormat(filepath.Ext(name))
}
