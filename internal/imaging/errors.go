package imaging

import "fmt"

// InputError reports an input image that could not be opened or decoded.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("read input image %q: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// OutputError reports an output image that could not be encoded or written.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("write output image %q: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
