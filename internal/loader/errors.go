package loader

import (
	"errors"
	"fmt"
)

// ErrUnsupportedImage is the sentinel a transform returns (or wraps) to report
// that an image uses a format newer than the transform supports. The pipeline
// logs the incident, skips the transform, and continues with the unmodified
// image. Any other transform error aborts the pipeline.
var ErrUnsupportedImage = errors.New("unsupported image format")

// NotFoundError reports that a unit could not be resolved. It always carries
// the external name the caller asked for; which internal tier failed is
// visible only in diagnostic logs.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unit %q not found: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("unit %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// SealingError reports an attempt to install a unit into a namespace segment
// that is sealed to a different origin. It is fatal for the resolution
// attempt and is never cached: it indicates a structural conflict between two
// independently authored artifacts, not a missing resource.
type SealingError struct {
	Namespace string
	Sealed    string // origin the namespace is sealed to
	Origin    string // origin of the offending artifact
}

func (e *SealingError) Error() string {
	return fmt.Sprintf("sealing violation in namespace %q: sealed to origin %q, rejected origin %q",
		e.Namespace, e.Sealed, e.Origin)
}
