/*package query answers distance queries against finished window lists. It
only reads lists; nothing here mutates windows.
*/
package query

import (
	"math"

	"github.com/phil-mansfield/geodesic"
	"github.com/pkg/errors"
)

// ErrNotCovered is returned when no window covers a queried point.
var ErrNotCovered = errors.New("point is not covered by any window")

// At evaluates the distance function of w at parametric position x on its
// edge: the distance from (x, 0) to the pseudo-source, plus D. x is not
// required to lie inside w.
func At(w *geodesic.Interval, x float64) float64 {
	return w.D + math.Hypot(x-w.PseudoX, w.PseudoY)
}

// Edge returns the distance at parametric position x along the edge that l
// belongs to.
func Edge(l *geodesic.IntervalList, x float64) (float64, error) {
	w := l.Find(x)
	if w == nil {
		return 0, errors.Wrapf(ErrNotCovered, "x = %g", x)
	}
	return At(w, x), nil
}

// Min returns the smallest distance anywhere on the edge, along with the
// position where it is reached. Each window's minimum is at the foot of its
// pseudo-source, clamped to the window.
func Min(l *geodesic.IntervalList) (x, d float64, err error) {
	if l.Empty() {
		return 0, 0, errors.Wrap(ErrNotCovered, "edge has no windows")
	}

	d = math.Inf(+1)
	err = l.Do(func(w *geodesic.Interval) error {
		foot := math.Max(w.Start, math.Min(w.Stop, w.PseudoX))
		if wd := At(w, foot); wd < d {
			x, d = foot, wd
		}
		return nil
	})
	return x, d, err
}

// Profile samples the distance function n times across every window of l,
// in order. Sample positions include both ends of each window, so n must be
// at least 2.
func Profile(l *geodesic.IntervalList, n int) (xs, ds []float64, err error) {
	if n < 2 {
		return nil, nil, errors.Errorf("need at least 2 samples per window, got %d", n)
	}

	xs = make([]float64, 0, n*l.Len())
	ds = make([]float64, 0, n*l.Len())
	err = l.Do(func(w *geodesic.Interval) error {
		dx := w.Len() / float64(n-1)
		for i := 0; i < n; i++ {
			x := w.Start + dx*float64(i)
			if i == n-1 {
				x = w.Stop
			}
			xs = append(xs, x)
			ds = append(ds, At(w, x))
		}
		return nil
	})
	return xs, ds, err
}
