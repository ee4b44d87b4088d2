package render

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatDOT, FormatPDF, FormatPNG}

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat normalizes a format name. An empty name is inferred from the
// output path's extension, falling back to SVG.
func ParseFormat(name, path string) (string, error) {
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(path), ".")
		if name == "" {
			return FormatSVG, nil
		}
	}
	name = strings.ToLower(name)
	for _, f := range Formats {
		if f == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ContentType returns the MIME type served for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	case FormatPNG:
		return "image/png"
	default:
		return "text/vnd.graphviz"
	}
}
