// Package imaging provides the raster operations around glyph extraction:
// decoding and encoding, the edge preprocessing chain, luminance sampling,
// post-filter smoothing, and debug overlays.
//
// All operations work with standard Go image types. Intermediate colour
// images are *image.NRGBA (the native type of github.com/disintegration/imaging)
// and single-channel maps are *image.Gray. The coordinate system has (0,0) at
// the top-left corner, X increasing rightward and Y increasing downward.
//
// # Edge Preprocessing
//
// The preprocessing chain mirrors the classic text-extraction recipe:
//
//  1. Resize to a canonical canvas (linear interpolation)
//  2. Pad with a constant border
//  3. Split into R, G and B channels
//  4. Run Canny edge detection on each channel
//  5. Merge the three edge maps and collapse them to one grayscale map
//
// # Luminance
//
// Luminance is computed as 0.30*R + 0.59*G + 0.11*B on 8-bit components.
// Sampling outside the image never panics: it yields 0 and reports the miss
// to the caller, which decides whether to log it.
//
// # Error Handling
//
// Load wraps every failure in *InputError and Save wraps every failure in
// *OutputError, so callers can tell the two apart with errors.As and map
// them to distinct exit codes.
package imaging
