package importer

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileType identifies which extraction strategy applies to a file.
type FileType string

const (
	TypeSlideDeck   FileType = "slide-deck"
	TypeGenericHTML FileType = "generic-html"
	TypeText        FileType = "text"
	TypeUnknown     FileType = "unknown"
)

// sniffBytes is how much of an HTML file the detector reads to decide
// between a slide deck and a generic page.
const sniffBytes = 5000

// SupportedExtensions lists file extensions the importer can handle.
var SupportedExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".txt":  true,
	".md":   true,
}

// IsSupportedExtension reports whether a filename has an importable
// extension.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// DetectType inspects a file path and, for HTML, the head of its
// content, and returns the extraction strategy to use. The only error
// case is an HTML file that cannot be read for sniffing.
func DetectType(path string) (FileType, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm":
		head, err := readHead(path, sniffBytes)
		if err != nil {
			return TypeUnknown, &ImportError{
				Path:   path,
				Kind:   KindFileUnreadable,
				Reason: "cannot read file",
				Err:    err,
			}
		}
		if strings.Contains(strings.ToLower(head), "reveal") || strings.Contains(head, `class="slides"`) {
			return TypeSlideDeck, nil
		}
		return TypeGenericHTML, nil
	case ".txt", ".md":
		return TypeText, nil
	default:
		return TypeUnknown, nil
	}
}

func readHead(path string, n int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, int64(n)))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
