package detection

import (
	"fmt"

	"github.com/ironsheep/textract/internal/contour"
)

// Params tunes the glyph classifier. The zero value is not useful; start
// from DefaultParams.
type Params struct {
	// MinAspect and MaxAspect bound the bounding-box width/height ratio.
	MinAspect float64 `yaml:"minAspect"`
	MaxAspect float64 `yaml:"maxAspect"`

	// MinArea is the smallest bounding-box area, in pixels, of a glyph.
	MinArea int `yaml:"minArea"`

	// MaxAreaDivisor caps the bounding-box area at imageArea/MaxAreaDivisor
	// (integer division).
	MaxAreaDivisor int `yaml:"maxAreaDivisor"`

	// MaxGlyphChildren is the descendant count at which the interior veto
	// stops applying and above which the container veto starts.
	MaxGlyphChildren int `yaml:"maxGlyphChildren"`
}

// DefaultParams returns thresholds tuned for a 640x480 page with a 50px border.
func DefaultParams() Params {
	return Params{
		MinAspect:        0.1,
		MaxAspect:        10,
		MinArea:          15,
		MaxAreaDivisor:   5,
		MaxGlyphChildren: 2,
	}
}

// Reason explains a classification decision.
type Reason int

const (
	// Kept means the contour is a glyph candidate.
	Kept Reason = iota
	// RejectedEmpty means the contour has no points or a degenerate box.
	RejectedEmpty
	// RejectedShape means the aspect ratio is out of range.
	RejectedShape
	// RejectedSize means the box area is out of range.
	RejectedSize
	// RejectedOpen means the contour does not close on itself.
	RejectedOpen
	// RejectedInterior means the contour is detail inside a glyph.
	RejectedInterior
	// RejectedContainer means the contour encloses several glyphs.
	RejectedContainer
)

func (r Reason) String() string {
	switch r {
	case Kept:
		return "kept"
	case RejectedEmpty:
		return "empty"
	case RejectedShape:
		return "shape"
	case RejectedSize:
		return "size"
	case RejectedOpen:
		return "open"
	case RejectedInterior:
		return "interior"
	case RejectedContainer:
		return "container"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// Classifier answers "is this contour a glyph?" for every contour of a set.
type Classifier struct {
	set     *contour.Set
	params  Params
	maxArea int
	gate    []Reason
}

// NewClassifier builds a classifier over set for an image of the given area
// in pixels. The set must not be modified while the classifier is in use.
func NewClassifier(set *contour.Set, imageArea int, params Params) *Classifier {
	c := &Classifier{
		set:    set,
		params: params,
	}
	if params.MaxAreaDivisor > 0 {
		c.maxArea = imageArea / params.MaxAreaDivisor
	} else {
		c.maxArea = imageArea
	}
	c.gate = make([]Reason, set.Len())
	for i := range c.gate {
		c.gate[i] = c.evalGates(set.Contours[i])
	}
	return c
}

// Len returns the number of contours being classified.
func (c *Classifier) Len() int {
	return len(c.gate)
}

// evalGates applies the shape/size gate and the connectedness gate.
func (c *Classifier) evalGates(ct contour.Contour) Reason {
	if len(ct) == 0 {
		return RejectedEmpty
	}
	r := ct.Bounds()
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return RejectedEmpty
	}

	// Test its shape: too oblong or too tall is probably not a character.
	aspect := float64(w) / float64(h)
	if aspect < c.params.MinAspect || aspect > c.params.MaxAspect {
		return RejectedShape
	}

	area := w * h
	if area > c.maxArea || area < c.params.MinArea {
		return RejectedSize
	}

	if !ct.Closed() {
		return RejectedOpen
	}
	return Kept
}

// Gated reports whether contour i passes both gates, ignoring the hierarchy.
func (c *Classifier) Gated(i int) bool {
	return c.gate[i] == Kept
}

func (c *Classifier) gated(r contour.Ref) bool {
	i, ok := r.Index()
	return ok && c.gate[i] == Kept
}

// Classify returns the decision for contour i.
func (c *Classifier) Classify(i int) Reason {
	if g := c.gate[i]; g != Kept {
		return g
	}

	if parent := c.NearestGatedAncestor(i); parent.Valid() {
		p, _ := parent.Index()
		if c.CountChildren(p) <= c.params.MaxGlyphChildren {
			return RejectedInterior
		}
	}

	if c.CountChildren(i) > c.params.MaxGlyphChildren {
		return RejectedContainer
	}
	return Kept
}

// IsKept reports whether contour i is a glyph candidate.
func (c *Classifier) IsKept(i int) bool {
	return c.Classify(i) == Kept
}

// Glyphs returns the indices of every glyph candidate in ascending order.
func (c *Classifier) Glyphs() []int {
	var out []int
	for i := range c.gate {
		if c.IsKept(i) {
			out = append(out, i)
		}
	}
	return out
}

// NearestGatedAncestor walks up from contour i, skipping ancestors that fail
// the gates, and returns the first one that passes, or contour.None.
func (c *Classifier) NearestGatedAncestor(i int) contour.Ref {
	p := c.set.Parent(i)
	for p.Valid() && !c.gated(p) {
		j, _ := p.Index()
		p = c.set.Parent(j)
	}
	return p
}

// CountChildren counts the gated descendants of contour i: the first child
// if it passes the gates, each of its siblings (in both directions) that
// passes, and, recursively, the children of the first child and of every
// sibling whether or not they pass themselves.
func (c *Classifier) CountChildren(i int) int {
	first := c.set.FirstChild(i)
	j, ok := first.Index()
	if !ok {
		return 0
	}
	count := 0
	if c.gated(first) {
		count = 1
	}
	return count + c.countSiblings(j)
}

// countSiblings counts the children of i plus every sibling of i reachable
// through next and previous links, with their children.
func (c *Classifier) countSiblings(i int) int {
	count := c.CountChildren(i)

	for r := c.set.Next(i); r.Valid(); {
		j, _ := r.Index()
		if c.gated(r) {
			count++
		}
		count += c.CountChildren(j)
		r = c.set.Next(j)
	}

	for r := c.set.Prev(i); r.Valid(); {
		j, _ := r.Index()
		if c.gated(r) {
			count++
		}
		count += c.CountChildren(j)
		r = c.set.Prev(j)
	}
	return count
}
