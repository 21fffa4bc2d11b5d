package geodesic

import (
	"github.com/phil-mansfield/geodesic/mesh"
	"github.com/pkg/errors"
)

// NoSeparatingPoint is the list-level SP value of a list which has no cached
// pseudo-source.
const NoSeparatingPoint = -1

// IntervalList is the ordered list of windows on one mesh edge. Windows are
// kept left to right by Start and do not overlap. The list itself only
// guarantees that its links are consistent: callers choose the insertion
// position, either with InsertSorted or with an explicit neighbor.
//
// The list owns every window linked into it. Erase and Clear detach windows,
// after which they can be inserted again (into this or any other list).
//
// The zero value is an empty, unbound list that is ready to use, but its SP
// is 0. Use NewIntervalList to start from NoSeparatingPoint.
//
// An IntervalList is not safe for concurrent use.
type IntervalList struct {
	// StartVertex is the edge endpoint that the parametric domain starts
	// from.
	StartVertex *mesh.Vertex

	// Pseudo-source data cached for the case where one source geometry
	// covers the whole edge. SP is NoSeparatingPoint when unset.
	SP               float64
	PseudoX, PseudoY float64

	edge       *mesh.Edge
	begin, end *Interval
	n          int

	// gen is bumped by Clear, which detaches every window at once.
	gen uint64
}

// NewIntervalList returns an empty, unbound list.
func NewIntervalList() *IntervalList {
	return &IntervalList{SP: NoSeparatingPoint, gen: 1}
}

// Initialize binds the list to the edge that owns it. A list can only be
// bound once.
func (l *IntervalList) Initialize(e *mesh.Edge) error {
	if e == nil {
		return errors.Wrap(ErrInvalidArgument, "cannot bind interval list to nil edge")
	} else if l.edge != nil {
		return errors.Wrapf(ErrInvalidArgument,
			"interval list is already bound to %v", l.edge)
	}
	l.bind(e)
	return nil
}

func (l *IntervalList) bind(e *mesh.Edge) {
	l.edge = e
	l.StartVertex = e.Vertex(0)
}

// Edge returns the edge the list belongs to, or nil for an unbound list.
func (l *IntervalList) Edge() *mesh.Edge { return l.edge }

// Begin returns the leftmost window, or nil if the list is empty.
func (l *IntervalList) Begin() *Interval { return l.begin }

// End returns the rightmost window, or nil if the list is empty.
func (l *IntervalList) End() *Interval { return l.end }

func (l *IntervalList) Empty() bool { return l.begin == nil }

func (l *IntervalList) Len() int { return l.n }

// owns returns true if w is currently linked into l.
func (l *IntervalList) owns(w *Interval) bool {
	return w != nil && w.list == l && w.gen == l.gen
}

func (l *IntervalList) checkInsertable(w *Interval) error {
	if w == nil {
		return errors.Wrap(ErrInvalidArgument, "cannot insert nil window")
	} else if w.Linked() {
		return errors.Wrapf(ErrInvalidArgument,
			"window %v is already linked into a list", w)
	}
	return nil
}

func (l *IntervalList) checkMark(mark *Interval) error {
	if !l.owns(mark) {
		return errors.Wrapf(ErrInvalidArgument,
			"window %v is not linked into this list", mark)
	}
	return nil
}

// link splices w between prev and next, either of which may be nil.
func (l *IntervalList) link(w, prev, next *Interval) {
	if l.gen == 0 {
		l.gen = 1
	}
	w.list, w.gen = l, l.gen
	w.previous, w.next = prev, next

	if prev == nil {
		l.begin = w
	} else {
		prev.next = w
	}
	if next == nil {
		l.end = w
	} else {
		next.previous = w
	}
	l.n++
}

// PushBack appends w at the right end of the list. No ordering is checked.
func (l *IntervalList) PushBack(w *Interval) error {
	if err := l.checkInsertable(w); err != nil {
		return err
	}
	l.link(w, l.end, nil)
	return nil
}

// PushFront inserts w at the left end of the list.
func (l *IntervalList) PushFront(w *Interval) error {
	if err := l.checkInsertable(w); err != nil {
		return err
	}
	l.link(w, nil, l.begin)
	return nil
}

// InsertBefore inserts w directly to the left of mark. A nil mark appends.
func (l *IntervalList) InsertBefore(w, mark *Interval) error {
	if mark == nil {
		return l.PushBack(w)
	}
	if err := l.checkInsertable(w); err != nil {
		return err
	} else if err := l.checkMark(mark); err != nil {
		return err
	}
	l.link(w, mark.previous, mark)
	return nil
}

// InsertAfter inserts w directly to the right of mark. A nil mark prepends.
func (l *IntervalList) InsertAfter(w, mark *Interval) error {
	if mark == nil {
		return l.PushFront(w)
	}
	if err := l.checkInsertable(w); err != nil {
		return err
	} else if err := l.checkMark(mark); err != nil {
		return err
	}
	l.link(w, mark, mark.next)
	return nil
}

// InsertSorted inserts w after the rightmost window whose Start is not
// greater than w.Start. The scan starts from the right end, since new
// windows usually arrive near it.
func (l *IntervalList) InsertSorted(w *Interval) error {
	if err := l.checkInsertable(w); err != nil {
		return err
	}
	prev := l.end
	for prev != nil && prev.Start > w.Start {
		prev = prev.previous
	}
	if prev == nil {
		l.link(w, nil, l.begin)
	} else {
		l.link(w, prev, prev.next)
	}
	return nil
}

// Erase unlinks w from the list. Its neighbors are relinked to each other,
// while w's own link fields are left alone: Next and Previous report nil
// for it from now on. It fails without modifying the list if w is not
// linked into l.
func (l *IntervalList) Erase(w *Interval) error {
	if err := l.checkMark(w); err != nil {
		return err
	}

	switch {
	case w == l.begin && w == l.end:
		l.begin, l.end = nil, nil
	case w == l.begin:
		l.begin = w.next
		l.begin.previous = nil
	case w == l.end:
		l.end = w.previous
		l.end.next = nil
	default:
		w.previous.next = w.next
		w.next.previous = w.previous
	}

	l.n--
	w.detach()
	return nil
}

// Clear empties the list in constant time. Windows that were linked into l
// are detached, though their link fields are not reset until they are
// inserted again.
func (l *IntervalList) Clear() {
	l.begin, l.end = nil, nil
	l.n = 0
	l.gen++
}

// Split cuts w at x. Afterwards w covers [w.Start, x) and the returned
// window, a copy of w's pseudo-source data, covers [x, old w.Stop) and is
// linked directly after w.
func (l *IntervalList) Split(w *Interval, x float64) (*Interval, error) {
	if err := l.checkMark(w); err != nil {
		return nil, err
	} else if !(w.Start < x && x < w.Stop) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"split point %g is not inside window %v", x, w)
	}

	right := &Interval{
		Start: x, Stop: w.Stop, D: w.D,
		PseudoX: w.PseudoX, PseudoY: w.PseudoY,
		SP: w.SP, ShortestDistance: w.ShortestDistance,
	}
	w.Stop = x
	l.link(right, w, w.next)
	return right, nil
}

// MergeNext extends w over its right neighbor and erases that neighbor,
// which is returned. Whether the two windows share a pseudo-source is the
// caller's concern.
func (l *IntervalList) MergeNext(w *Interval) (*Interval, error) {
	if err := l.checkMark(w); err != nil {
		return nil, err
	} else if w.next == nil {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"window %v has no right neighbor to merge with", w)
	}

	next := w.next
	w.Stop = next.Stop
	if err := l.Erase(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Find returns the window covering x, or nil if no window does. The last
// window also covers its own Stop.
func (l *IntervalList) Find(x float64) *Interval {
	for w := l.begin; w != nil; w = w.next {
		if w.Contains(x) {
			return w
		} else if w.Start > x {
			return nil
		}
	}
	if l.end != nil && x == l.end.Stop {
		return l.end
	}
	return nil
}

// Do calls fn on every window from left to right. If fn returns an error,
// the traversal stops and that error is returned, unless it is Stop, in
// which case nil is returned. fn must not modify the list.
func (l *IntervalList) Do(fn func(w *Interval) error) error {
	for w := l.begin; w != nil; w = w.next {
		if err := fn(w); err == Stop {
			return nil
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Slice returns the windows in order.
func (l *IntervalList) Slice() []*Interval {
	out := make([]*Interval, 0, l.n)
	for w := l.begin; w != nil; w = w.next {
		out = append(out, w)
	}
	return out
}

// Check walks the list in both directions and verifies that its links,
// counts, ordering, and edge bounds are consistent. The returned error wraps
// ErrCorrupt or ErrInvalidWindow.
func (l *IntervalList) Check() error {
	if (l.begin == nil) != (l.end == nil) {
		return errors.Wrapf(ErrCorrupt,
			"begin = %v, but end = %v", l.begin, l.end)
	} else if l.begin != nil && l.begin.previous != nil {
		return errors.Wrap(ErrCorrupt, "first window has a previous window")
	} else if l.end != nil && l.end.next != nil {
		return errors.Wrap(ErrCorrupt, "last window has a next window")
	}

	tol := eps
	if l.edge != nil {
		tol = eps * l.edge.Length()
	}

	n := 0
	var prev *Interval
	for w := l.begin; w != nil; prev, w = w, w.next {
		if n++; n > l.n {
			return errors.Wrapf(ErrCorrupt,
				"forward walk passes %d windows, but the list holds %d", n, l.n)
		} else if !l.owns(w) {
			return errors.Wrapf(ErrCorrupt, "window %d is not owned by the list", n-1)
		} else if w.previous != prev {
			return errors.Wrapf(ErrCorrupt, "window %d has a bad previous link", n-1)
		}

		if err := w.Validate(); err != nil {
			return errors.Wrapf(err, "window %d", n-1)
		} else if l.edge != nil && (w.Start < -tol || w.Stop > l.edge.Length()+tol) {
			return errors.Wrapf(ErrInvalidWindow,
				"window %d, %v, is outside of edge domain [0, %g]",
				n-1, w, l.edge.Length())
		}

		if prev != nil && prev.Start > w.Start {
			return errors.Wrapf(ErrCorrupt,
				"window %d starts at %g, before window %d at %g",
				n-1, w.Start, n-2, prev.Start)
		} else if prev != nil && prev.Stop > w.Start+tol {
			return errors.Wrapf(ErrCorrupt,
				"window %d overlaps window %d", n-1, n-2)
		}
	}
	if n != l.n {
		return errors.Wrapf(ErrCorrupt,
			"forward walk passes %d windows, but the list holds %d", n, l.n)
	} else if prev != l.end {
		return errors.Wrap(ErrCorrupt, "forward walk does not end at the last window")
	}

	n = 0
	for w := l.end; w != nil; w = w.previous {
		if n++; n > l.n {
			return errors.Wrap(ErrCorrupt, "backward walk does not terminate")
		}
		if w.previous == nil && w != l.begin {
			return errors.Wrap(ErrCorrupt, "backward walk does not end at the first window")
		}
	}
	return nil
}

const eps = 1e-9
