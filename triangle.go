package geodesic

import (
	"github.com/phil-mansfield/geodesic/mesh"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Triangle bundles the pieces of one face that are needed to propagate
// windows from its bottom edge across to its two other edges. It does not
// own anything and is meant to be rebuilt for every face-processing step.
//
//             top
//             /\
//       left /  \ right
//           /    \
//     left  ------  right
//           bottom
type Triangle struct {
	Face *mesh.Face

	BottomEdge, LeftEdge, RightEdge *mesh.Edge

	TopVertex, LeftVertex, RightVertex *mesh.Vertex

	// Interior angles at the top, left, and right vertices.
	TopAlpha, LeftAlpha, RightAlpha float64

	// Lists of the left and right edges, which receive new windows.
	LeftList, RightList *IntervalList
}

// EdgeLists holds one IntervalList per mesh edge, indexed by edge ID.
type EdgeLists []*IntervalList

// NewEdgeLists creates an empty list bound to each edge of m.
func NewEdgeLists(m *mesh.Mesh) EdgeLists {
	lists := make(EdgeLists, len(m.Edges))
	for i := range m.Edges {
		lists[i] = NewIntervalList()
		lists[i].bind(&m.Edges[i])
	}
	return lists
}

// For returns the list belonging to e.
func (lists EdgeLists) For(e *mesh.Edge) *IntervalList {
	return lists[e.ID()]
}

// Count returns the total number of windows in all lists.
func (lists EdgeLists) Count() int {
	n := 0
	for _, l := range lists {
		n += l.Len()
	}
	return n
}

// Clear empties every list.
func (lists EdgeLists) Clear() {
	for _, l := range lists {
		l.Clear()
	}
}

// Check runs IntervalList.Check on every list and combines all failures.
func (lists EdgeLists) Check() error {
	var err error
	for i, l := range lists {
		if e := l.Check(); e != nil {
			err = multierr.Append(err, errors.Wrapf(e, "edge %d", i))
		}
	}
	return err
}

// Triangle assembles the propagation descriptor for pushing windows across
// f from bottom. The left vertex is the first vertex of bottom.
func (lists EdgeLists) Triangle(f *mesh.Face, bottom *mesh.Edge) (*Triangle, error) {
	if f == nil || bottom == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil face or edge")
	}
	top := f.OppositeVertex(bottom)
	if top == nil {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"%v is not an edge of %v", bottom, f)
	}

	left, right := bottom.Vertex(0), bottom.Vertex(1)
	t := &Triangle{
		Face:       f,
		BottomEdge: bottom,
		LeftEdge:   f.OppositeEdge(right),
		RightEdge:  f.OppositeEdge(left),

		TopVertex:   top,
		LeftVertex:  left,
		RightVertex: right,

		TopAlpha:   f.Angle(top),
		LeftAlpha:  f.Angle(left),
		RightAlpha: f.Angle(right),
	}
	t.LeftList = lists.For(t.LeftEdge)
	t.RightList = lists.For(t.RightEdge)
	return t, nil
}
