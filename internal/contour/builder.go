package contour

// Builder assembles a Set one contour at a time, appending each new contour
// to the end of its parent's child chain. Top-level contours are chained as
// siblings of one another with no parent.
type Builder struct {
	set   Set
	tails map[Ref]int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{tails: make(map[Ref]int)}
}

// Add appends c under parent (None for a top-level contour) and returns its
// index.
func (b *Builder) Add(c Contour, parent Ref) int {
	idx := len(b.set.Contours)
	b.set.Contours = append(b.set.Contours, c)
	b.set.Nodes = append(b.set.Nodes, Node{Parent: parent})

	if tail, ok := b.tails[parent]; ok {
		b.set.Nodes[tail].Next = To(idx)
		b.set.Nodes[idx].Prev = To(tail)
	} else if p, ok := parent.Index(); ok {
		b.set.Nodes[p].FirstChild = To(idx)
	}
	b.tails[parent] = idx
	return idx
}

// Set returns the assembled set. The builder must not be used afterwards.
func (b *Builder) Set() *Set {
	s := b.set
	return &s
}
