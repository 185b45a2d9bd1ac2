package errors

import (
	"math"

	"github.com/cockroachdb/errors"
)

// WarningHandler receives non-fatal warnings raised through Warn.
// The default handler discards them; pkg/log installs a logging handler.
var WarningHandler = func(err error) {}

// Warn reports a non-fatal condition to WarningHandler.
func Warn(err error) {
	if err == nil {
		return
	}
	WarningHandler(err)
}

// Recover converts a panic in the calling function into an error stored in *errp.
// It must be deferred directly:
//
//	func (s *StandardScaler) Fit(ds feature.Dataset) (err error) {
//	    defer scigoErrors.Recover(&err, "StandardScaler.Fit")
//	    ...
//	}
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	var err error
	switch v := r.(type) {
	case error:
		err = errors.Wrapf(v, "%s: panic", op)
	default:
		err = errors.Newf("%s: panic: %v", op, v)
	}
	if errp != nil {
		*errp = err
	}
}

// CheckScalar returns an error when v is NaN or infinite.
func CheckScalar(name string, v float64, iteration int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Newf("numerical instability in %s at iteration %d: %v", name, iteration, v)
	}
	return nil
}
