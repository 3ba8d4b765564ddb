// Package importer converts presentation files (slide-deck HTML,
// generic HTML, plain text, Markdown) into fully populated prep
// sessions: talking points, practice questions, stat callouts, tips,
// and pitch scripts.
//
// The pipeline is strictly sequential: type detection, structural
// parsing into per-unit records, aggregation, keyword classification,
// then synthesis of derived artifacts. It reads the input file and
// nothing else; each call builds fresh local state, so concurrent
// calls on independent paths are safe.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hibbslab/prepdeck/internal/session"
)

// Import parses the file at path and returns a populated session
// record. Failures are *ImportError values carrying the path and a
// categorized reason (unsupported extension, unreadable file, or
// malformed slide-deck content).
func Import(path string) (*session.Session, error) {
	ftype, err := DetectType(path)
	if err != nil {
		return nil, err
	}

	switch ftype {
	case TypeSlideDeck:
		return importSlideDeck(path)
	case TypeGenericHTML:
		return importGenericHTML(path)
	case TypeText:
		if strings.ToLower(filepath.Ext(path)) == ".md" {
			return importMarkdown(path)
		}
		return importText(path)
	default:
		return nil, &ImportError{
			Path:   path,
			Kind:   KindUnsupportedType,
			Reason: fmt.Sprintf("unsupported file type: %s", filepath.Ext(path)),
		}
	}
}

// readFile wraps read failures in the structured error the caller
// expects.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{Path: path, Kind: KindFileUnreadable, Reason: "cannot read file", Err: err}
	}
	return data, nil
}
