package importer

import "fmt"

// ErrorKind categorizes import failures.
type ErrorKind string

const (
	KindUnsupportedType  ErrorKind = "unsupported_type"
	KindFileUnreadable   ErrorKind = "file_unreadable"
	KindMalformedContent ErrorKind = "malformed_content"
)

// ImportError is the structured failure returned by Import and
// DetectType: the offending path, the failure category, and a
// human-readable reason.
type ImportError struct {
	Path   string
	Kind   ErrorKind
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("import %s: %s", e.Path, e.Reason)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
