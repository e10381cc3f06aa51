package imagepath

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel causes carried by [ValidationError]. Match them with errors.Is.
var (
	ErrInvalidFrame         = errors.New("must be given as frame hash, frame notation or digits")
	ErrInvalidPrefix        = errors.New("must be a single separator character")
	ErrInvalidVersion       = errors.New("must be given as digits")
	ErrInvalidVersionPrefix = errors.New("must be v or V")
	ErrNoFolderVersion      = errors.New("no folder version to substitute into")
	ErrSubstitutionMismatch = errors.New("substitution did not reproduce the requested value")
)

// ValidationError reports a rejected mutation. Param names the offending
// argument and Value is what was received. The image keeps its prior path.
type ValidationError struct {
	Param string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q %v", e.Param, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(param, value string, cause error) error {
	return &ValidationError{Param: param, Value: value, Err: cause}
}

// mismatch wraps ErrSubstitutionMismatch with what was found instead.
func mismatch(param, value, format string, args ...interface{}) error {
	return invalid(param, value, errors.Wrapf(ErrSubstitutionMismatch, format, args...))
}
