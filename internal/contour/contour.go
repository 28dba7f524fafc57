package contour

import (
	"errors"
	"fmt"
	"image"
)

// Contour is an ordered, closed sequence of integer points delimiting a
// connected edge region.
type Contour []image.Point

// Bounds returns the smallest rectangle containing every point. Max is
// exclusive, so a single point yields a 1x1 rectangle. An empty contour
// yields the zero rectangle.
func (c Contour) Bounds() image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c[0], Max: c[0].Add(image.Pt(1, 1))}
	for _, p := range c[1:] {
		if p.X < r.Min.X {
			r.Min.X = p.X
		}
		if p.Y < r.Min.Y {
			r.Min.Y = p.Y
		}
		if p.X >= r.Max.X {
			r.Max.X = p.X + 1
		}
		if p.Y >= r.Max.Y {
			r.Max.Y = p.Y + 1
		}
	}
	return r
}

// Closed reports whether the first and last points are within Chebyshev
// distance 1 of each other.
func (c Contour) Closed() bool {
	if len(c) == 0 {
		return false
	}
	first, last := c[0], c[len(c)-1]
	return absInt(first.X-last.X) <= 1 && absInt(first.Y-last.Y) <= 1
}

// Ref is an optional index into a Set. The zero value refers to nothing.
type Ref struct {
	n int
}

// None is the empty reference.
var None = Ref{}

// To returns a reference to contour i. Negative indices yield None.
func To(i int) Ref {
	if i < 0 {
		return None
	}
	return Ref{n: i + 1}
}

// Index returns the referenced index and whether the reference is set.
func (r Ref) Index() (int, bool) {
	return r.n - 1, r.n > 0
}

// Valid reports whether the reference points at a contour.
func (r Ref) Valid() bool {
	return r.n > 0
}

func (r Ref) String() string {
	if !r.Valid() {
		return "none"
	}
	return fmt.Sprintf("%d", r.n-1)
}

// Node links one contour into the hierarchy forest.
type Node struct {
	Next       Ref // next sibling
	Prev       Ref // previous sibling
	FirstChild Ref
	Parent     Ref
}

// Set is the output of contour extraction: the contours and their
// hierarchy, indexed identically.
type Set struct {
	Contours []Contour
	Nodes    []Node
}

// Len returns the number of contours in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Contours)
}

// Parent returns the parent reference of contour i.
func (s *Set) Parent(i int) Ref { return s.Nodes[i].Parent }

// FirstChild returns the first-child reference of contour i.
func (s *Set) FirstChild(i int) Ref { return s.Nodes[i].FirstChild }

// Next returns the next-sibling reference of contour i.
func (s *Set) Next(i int) Ref { return s.Nodes[i].Next }

// Prev returns the previous-sibling reference of contour i.
func (s *Set) Prev(i int) Ref { return s.Nodes[i].Prev }

// Children returns the indices of the direct children of contour i, starting
// at the first child and following next-sibling links.
func (s *Set) Children(i int) []int {
	var out []int
	for r := s.Nodes[i].FirstChild; r.Valid(); {
		j, _ := r.Index()
		out = append(out, j)
		r = s.Nodes[j].Next
	}
	return out
}

// ErrMalformedHierarchy is wrapped by every error returned from Validate.
var ErrMalformedHierarchy = errors.New("malformed contour hierarchy")

// Validate checks that every reference is in range, that the parent links
// form a forest, and that sibling and child links agree with them.
func (s *Set) Validate() error {
	n := len(s.Contours)
	if len(s.Nodes) != n {
		return fmt.Errorf("%w: %d contours but %d nodes", ErrMalformedHierarchy, n, len(s.Nodes))
	}

	check := func(i int, name string, r Ref) error {
		if j, ok := r.Index(); ok && j >= n {
			return fmt.Errorf("%w: contour %d %s %d out of range", ErrMalformedHierarchy, i, name, j)
		}
		return nil
	}
	for i, nd := range s.Nodes {
		for _, f := range []struct {
			name string
			ref  Ref
		}{{"next", nd.Next}, {"prev", nd.Prev}, {"first child", nd.FirstChild}, {"parent", nd.Parent}} {
			if err := check(i, f.name, f.ref); err != nil {
				return err
			}
		}
	}

	// Parent chains must terminate.
	state := make([]uint8, n) // 0 unvisited, 1 on path, 2 done
	for i := range s.Nodes {
		var path []int
		j := i
		for {
			if state[j] == 2 {
				break
			}
			if state[j] == 1 {
				return fmt.Errorf("%w: parent cycle through contour %d", ErrMalformedHierarchy, j)
			}
			state[j] = 1
			path = append(path, j)
			p, ok := s.Nodes[j].Parent.Index()
			if !ok {
				break
			}
			j = p
		}
		for _, k := range path {
			state[k] = 2
		}
	}

	// Each child chain reaches every child exactly once.
	seen := make([]bool, n)
	for i := range s.Nodes {
		steps := 0
		for r := s.Nodes[i].FirstChild; r.Valid(); {
			j, _ := r.Index()
			if seen[j] {
				return fmt.Errorf("%w: contour %d reached twice from child chains", ErrMalformedHierarchy, j)
			}
			seen[j] = true
			if p, _ := s.Nodes[j].Parent.Index(); p != i || !s.Nodes[j].Parent.Valid() {
				return fmt.Errorf("%w: contour %d listed as child of %d but has parent %s",
					ErrMalformedHierarchy, j, i, s.Nodes[j].Parent)
			}
			r = s.Nodes[j].Next
			steps++
			if steps > n {
				return fmt.Errorf("%w: sibling cycle under contour %d", ErrMalformedHierarchy, i)
			}
		}
	}
	for j, nd := range s.Nodes {
		if nd.Parent.Valid() && !seen[j] {
			return fmt.Errorf("%w: contour %d unreachable from parent %s", ErrMalformedHierarchy, j, nd.Parent)
		}
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
