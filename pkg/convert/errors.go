package convert

import "fmt"

// RenderError indicates the rasterizer rejected the SVG content or the
// rendering parameters. It is fatal to the conversion: no retry is attempted
// and no output is produced.
type RenderError struct {
	Backend string
	Err     error
}

// Error returns the error message including the backend name.
func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: render failed: %v", e.Backend, e.Err)
}

// Unwrap returns the underlying rasterizer error.
func (e *RenderError) Unwrap() error { return e.Err }

// InputReadError indicates the SVG input could not be read (missing file,
// permission). Fatal, no output produced.
type InputReadError struct {
	Path string
	Err  error
}

// Error returns the error message including the input path.
func (e *InputReadError) Error() string {
	return fmt.Sprintf("read input %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying read error.
func (e *InputReadError) Unwrap() error { return e.Err }
