// Package contour holds the contour and hierarchy data model shared by the
// classifier and the binarizer, plus a native border-following tracer that
// extracts contours from a binary edge map.
//
// # Data Model
//
// A Contour is the closed sequence of pixel coordinates that delimits one
// connected edge region. Its bounding box is always derived from the points
// on demand, so it can never drift out of sync with them.
//
// Every contour has exactly one Node at the same index in Set.Nodes. A node
// holds four optional references (Next, Prev, FirstChild, Parent). The zero
// Ref means "no reference"; index 0 is a real contour and is never confused
// with the absence of one.
//
// # Tracing
//
// Trace implements topological border following over the non-zero pixels of
// an edge map and builds the full nesting tree: outer borders and hole borders
// are both reported, each enclosed border becomes a child of the border that
// surrounds it, and every pixel on a border is recorded (no approximation).
//
// # Immutability
//
// A Set is treated as read-only once it has been produced. The classifier
// relies on this to evaluate its recursive predicates without locking or
// cache invalidation.
package contour
