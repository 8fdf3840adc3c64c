package camera

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidParameter is wrapped by every ValidationError.
var ErrInvalidParameter = errors.New("invalid camera parameter")

// ValidationError reports a camera parameter that would make a singular or
// inverted projection.
type ValidationError struct {
	Field  string
	Value  float32
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("camera %s = %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidParameter
}

func validate(aspect, fov, near, far, orthoWidth float32) error {
	switch {
	case !(aspect > 0) || math32.IsInf(aspect, 0):
		return &ValidationError{"aspect", aspect, "must be a positive finite number"}
	case !(fov > 0 && fov < math32.Pi):
		return &ValidationError{"fov", fov, "must be in (0, pi)"}
	case !(near > 0):
		return &ValidationError{"near", near, "must be positive"}
	case !(far > near) || math32.IsInf(far, 0):
		return &ValidationError{"far", far, fmt.Sprintf("must be finite and greater than near (%v)", near)}
	case !(orthoWidth > 0):
		return &ValidationError{"orthoWidth", orthoWidth, "must be positive"}
	}
	return nil
}
