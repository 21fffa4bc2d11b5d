/*package geodesic contains the bookkeeping structures used by exact geodesic
distance propagation on triangle meshes: wavefront windows (Interval), the
ordered window list owned by each mesh edge (IntervalList), and the per-face
propagation descriptor (Triangle).

None of the types in this package compute geometry. The propagation algorithm
computes pseudo-sources, separating points, and distances and stores them
here; this package keeps the per-edge window partitions consistent while that
algorithm splits, inserts, and removes windows.
*/
package geodesic

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Interval is a window: a sub-interval [Start, Stop) of a mesh edge over
// which the distance to the source is a single smooth function, namely the
// distance to a pseudo-source plus D.
//
// All exported fields may be modified in place. Links are owned by the
// IntervalList the window is inserted into, and a window is linked into at
// most one list at a time.
type Interval struct {
	Start, Stop float64 // Parametric range along the parent edge
	D           float64 // Distance from the source to the pseudo-source

	// Pseudo-source coordinates in the edge's local unfolded frame. The edge
	// runs along the x axis and PseudoY is never positive.
	PseudoX, PseudoY float64

	SP float64 // Separating point

	// Shortest distance from the window to the apex vertex of the face
	// currently being processed. Kept directly since recomputing it from the
	// other fields loses precision.
	ShortestDistance float64

	next, previous *Interval
	list           *IntervalList
	gen            uint64
}

// NewInterval creates a detached window covering [start, stop) with the
// given pseudo-source. The remaining fields are left zeroed.
func NewInterval(start, stop, d, pseudoX, pseudoY float64) (*Interval, error) {
	w := &Interval{
		Start: start, Stop: stop, D: d,
		PseudoX: pseudoX, PseudoY: pseudoY,
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate returns an error wrapping ErrInvalidWindow if the window is
// degenerate, contains non-finite values, or has its pseudo-source above the
// edge line.
func (w *Interval) Validate() error {
	fields := [...]struct {
		name string
		val  float64
	}{
		{"Start", w.Start}, {"Stop", w.Stop}, {"D", w.D},
		{"PseudoX", w.PseudoX}, {"PseudoY", w.PseudoY},
		{"SP", w.SP}, {"ShortestDistance", w.ShortestDistance},
	}
	for _, f := range fields {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return errors.Wrapf(ErrInvalidWindow, "%s is %g", f.name, f.val)
		}
	}

	if w.Start >= w.Stop {
		return errors.Wrapf(ErrInvalidWindow,
			"Start = %g must be less than Stop = %g", w.Start, w.Stop)
	} else if w.PseudoY > 0 {
		return errors.Wrapf(ErrInvalidWindow,
			"PseudoY = %g must not be positive", w.PseudoY)
	} else if w.D < 0 {
		return errors.Wrapf(ErrInvalidWindow, "D = %g is negative", w.D)
	}
	return nil
}

// Next returns the window to the right of w, or nil.
func (w *Interval) Next() *Interval {
	if !w.Linked() {
		return nil
	}
	return w.next
}

// Previous returns the window to the left of w, or nil.
func (w *Interval) Previous() *Interval {
	if !w.Linked() {
		return nil
	}
	return w.previous
}

// List returns the list w is linked into, or nil if it is detached.
func (w *Interval) List() *IntervalList {
	if !w.Linked() {
		return nil
	}
	return w.list
}

// Linked returns true if w is currently linked into a list. Windows that were
// in a list when it was cleared are no longer linked.
func (w *Interval) Linked() bool {
	return w.list != nil && w.gen == w.list.gen
}

// Contains returns true if Start <= x < Stop.
func (w *Interval) Contains(x float64) bool {
	return w.Start <= x && x < w.Stop
}

// Len returns the parametric length of the window.
func (w *Interval) Len() float64 { return w.Stop - w.Start }

func (w *Interval) String() string {
	return fmt.Sprintf("[%g, %g) d=%g pseudo=(%g, %g) sp=%g",
		w.Start, w.Stop, w.D, w.PseudoX, w.PseudoY, w.SP)
}

// detach releases w from its list. The raw links are left as they were and
// are only rewritten when w is linked again.
func (w *Interval) detach() {
	w.list, w.gen = nil, 0
}
