//go:build !gocv

package vision

// Default returns the backend selected at build time.
func Default() Backend {
	return Native{}
}
