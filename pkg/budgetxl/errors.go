package budgetxl

import "fmt"

// DocumentError wraps a failure with the document path and the
// operation that hit it.
type DocumentError struct {
	Path string
	Op   string // "read", "insert", "append", "write_header"
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("budgetxl: %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError.
func NewDocumentError(op, path string, err error) *DocumentError {
	return &DocumentError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
