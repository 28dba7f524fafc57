// Package detection decides which contours of a document photograph are
// single printed glyphs.
//
// Classification uses geometry and topology only; pixel intensities are the
// binarizer's business. A contour is kept when it passes two gates and
// survives two topological vetoes.
//
// # Gates
//
//   - Shape and size: the bounding box must have an aspect ratio (w/h)
//     within [MinAspect, MaxAspect] and an area within
//     [MinArea, imageArea/MaxAreaDivisor]. This rules out ruling lines,
//     page borders, whole-page contours and speckle noise.
//   - Connectedness: the first and last points of the contour must be within
//     Chebyshev distance 1, i.e. the outline closes on itself.
//
// # Vetoes
//
// The hierarchy is consulted only for contours that pass both gates:
//
//   - Interior of a letter: the nearest ancestor that passes the gates
//     exists and has at most MaxGlyphChildren gated descendants. The contour
//     is then detail inside a larger glyph, such as the counter of an "o".
//   - Container of letters: the contour itself has more than
//     MaxGlyphChildren gated descendants, so it encloses several glyphs
//     (a box around a word, a table cell).
//
// Note the asymmetry: the interior veto counts descendants of the nearest
// gated ancestor, while the container veto counts the contour's own
// descendants.
//
// # Purity
//
// Every predicate is a pure function of the contour set, which is never
// modified. Gate results are computed once when the classifier is built;
// descendant counts are recomputed on demand, so asking about the same
// contour twice always gives the same answer.
package detection
