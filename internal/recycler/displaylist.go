package recycler

// DisplayList is a slice-backed Content. Hosts without their own child list
// embed it and lay out Nodes() in order.
type DisplayList struct {
	nodes  []Node
	extent float64
}

// Compile-time check.
var _ Content = (*DisplayList)(nil)

// NewDisplayList returns an empty display list.
func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

// Attach inserts n at index. A node that is already attached is moved.
func (d *DisplayList) Attach(n Node, index int) {
	d.Detach(n)
	d.insert(n, index)
}

// Detach removes n if present.
func (d *DisplayList) Detach(n Node) {
	if i := d.IndexOf(n); i >= 0 {
		d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
	}
}

// Move removes n and reinserts it at index. Moving a node that is not
// attached is a no-op.
func (d *DisplayList) Move(n Node, index int) {
	i := d.IndexOf(n)
	if i < 0 {
		return
	}
	index = clampIndex(index, len(d.nodes)-1)
	if i == index {
		return
	}
	d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
	d.insert(n, index)
}

// IndexOf returns the display index of n, or -1.
func (d *DisplayList) IndexOf(n Node) int {
	for i, c := range d.nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// SetExtent records the content size hint.
func (d *DisplayList) SetExtent(extent float64) { d.extent = extent }

// Extent returns the last content size hint.
func (d *DisplayList) Extent() float64 { return d.extent }

// Nodes returns the children in display order. The slice is owned by the
// list and must not be modified.
func (d *DisplayList) Nodes() []Node { return d.nodes }

// Len returns the number of attached children.
func (d *DisplayList) Len() int { return len(d.nodes) }

func (d *DisplayList) insert(n Node, index int) {
	index = clampIndex(index, len(d.nodes))
	d.nodes = append(d.nodes, nil)
	copy(d.nodes[index+1:], d.nodes[index:])
	d.nodes[index] = n
}

func clampIndex(index, hi int) int {
	return min(max(index, 0), max(hi, 0))
}
