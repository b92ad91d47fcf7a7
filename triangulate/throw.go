package triangulate

import (
	"github.com/osuushi/navmesh/geom"
	"github.com/pkg/errors"
)

// Threading errors up and down the bridging and clipping loops would add a lot
// of noise for conditions that only arise from bad input. Instead, we panic
// with a wrapped error, and the public entry points recover it.

type triangulateError struct {
	error
}

// Panic with a triangulateError.
func fatalf(format string, args ...interface{}) {
	panic(triangulateError{errors.Errorf(format, args...)})
}

// Panic with an error that wraps geom.ErrInvalidGeometry.
func invalidf(format string, args ...interface{}) {
	panic(triangulateError{errors.Wrapf(geom.ErrInvalidGeometry, format, args...)})
}

// HandleTriangulatePanicRecover turns a recovered triangulateError back into an
// error. Anything else (a real bug) keeps panicking.
func HandleTriangulatePanicRecover(r interface{}) error {
	if r != nil {
		if triangulateError, ok := r.(triangulateError); ok {
			return triangulateError.error
		}
		panic(r)
	}
	return nil
}
