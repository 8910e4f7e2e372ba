// Package export writes the document to standalone files.
package export

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/mdwriter/internal/convert"
)

// ErrNothingToExport is returned when the document is blank.
var ErrNothingToExport = errors.New("nothing to export")

// stampLayout matches an ISO-8601 UTC timestamp with colons replaced by
// dashes, as in markdown-2024-05-01T09-30-00.md.
const stampLayout = "2006-01-02T15-04-05"

// FileName returns the export file name for ext at now.
func FileName(now time.Time, ext string) string {
	return "markdown-" + now.UTC().Format(stampLayout) + ext
}

// Markdown writes text to dir and returns the file path.
func Markdown(dir, text string, now time.Time) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrNothingToExport
	}
	return write(dir, FileName(now, ".md"), []byte(text))
}

// HTML writes the rendered tree as a standalone page and returns the file
// path. An error tree is refused along with an empty one.
func HTML(dir, title string, tree convert.Tree, now time.Time) (string, error) {
	if tree.Len() == 0 || tree.IsError() {
		return "", ErrNothingToExport
	}
	if title == "" {
		title = "mdwriter export"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n</head>\n<body>\n")
	sb.WriteString(tree.HTML())
	sb.WriteString("</body>\n</html>\n")

	return write(dir, FileName(now, ".html"), []byte(sb.String()))
}

// Title returns the text of the first heading in tree, if any.
func Title(tree convert.Tree) string {
	for _, b := range tree.Blocks {
		if b.Kind == convert.KindHeading {
			return b.Text
		}
	}
	return ""
}

func write(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
