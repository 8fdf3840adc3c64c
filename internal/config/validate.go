package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that would otherwise produce a broken window or a
// degenerate projection.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.MSAA >= 0 && c.Graphics.MSAA <= 16, "graphics.msaa %d out of range [0, 16]", c.Graphics.MSAA)
	check(c.Camera.FOVDegrees > 0 && c.Camera.FOVDegrees < 180,
		"camera.fov_degrees %v must be in (0, 180)", c.Camera.FOVDegrees)
	check(c.Camera.Near > 0, "camera.near %v must be positive", c.Camera.Near)
	check(c.Camera.Far > c.Camera.Near, "camera.far %v must exceed camera.near %v", c.Camera.Far, c.Camera.Near)
	check(c.Camera.OrthographicSize > 0, "camera.ortho_width %v must be positive", c.Camera.OrthographicSize)
	check(c.Debug.ScreenshotFormat == "png" || c.Debug.ScreenshotFormat == "webp",
		"debug.screenshot_format %q must be png or webp", c.Debug.ScreenshotFormat)

	return errors.Join(errs...)
}
