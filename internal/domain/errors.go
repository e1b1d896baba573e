package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidDescription  = errors.New("invalid robot description")
	ErrMissingParameter    = errors.New("missing parameter")
	ErrUnsupportedGeometry = errors.New("unsupported geometry")
	ErrInvalidMesh         = errors.New("invalid mesh")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrExecution           = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindInvalidDescription  ErrorKind = "invalid_description"
	KindMissingParameter    ErrorKind = "missing_parameter"
	KindUnsupportedGeometry ErrorKind = "unsupported_geometry"
	KindInvalidMesh         ErrorKind = "invalid_mesh"
	KindInvalidConfig       ErrorKind = "invalid_config"
	KindExecution           ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: file, URI or parameter name
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
