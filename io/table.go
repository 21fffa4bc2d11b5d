package io

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/geodesic"
)

// Column layout of window tables.
const (
	EdgeColumn = iota
	StartColumn
	StopColumn
	DistanceColumn
	PseudoXColumn
	PseudoYColumn
	SeparatingPointColumn
	ShortestDistanceColumn

	TableColumns
)

// ReadWindowTable reads windows from a whitespace-separated text table with
// the columns
//
//	edge start stop distance pseudo_x pseudo_y sp shortest_distance
//
// Windows are named after their row and sorted like ReadWindowConfig's.
func ReadWindowTable(fname string, edges int) ([]WindowConfig, error) {
	colIdxs := make([]int, TableColumns)
	for i := range colIdxs {
		colIdxs[i] = i
	}
	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	n := len(cols[EdgeColumn])
	cons := make([]WindowConfig, n)
	for i := range cons {
		e := cols[EdgeColumn][i]
		if e != math.Trunc(e) {
			return nil, fmt.Errorf(
				"Row %d of %s has non-integer edge index %g.", i, fname, e,
			)
		}

		con := &cons[i]
		con.Edge = int(e)
		con.Start, con.Stop = cols[StartColumn][i], cols[StopColumn][i]
		con.Distance = cols[DistanceColumn][i]
		con.PseudoX, con.PseudoY = cols[PseudoXColumn][i], cols[PseudoYColumn][i]
		con.SeparatingPoint = cols[SeparatingPointColumn][i]
		con.ShortestDistance = cols[ShortestDistanceColumn][i]

		if err := con.CheckInit(fmt.Sprintf("row %d", i), edges); err != nil {
			return nil, err
		}
	}

	SortWindows(cons)
	return cons, nil
}

// WriteWindowTable writes every window in lists in the format read by
// ReadWindowTable. Tables have one row per window, so the list-level SP,
// PseudoX and PseudoY are not written. Use WriteYAML to keep them.
func WriteWindowTable(w io.Writer, lists geodesic.EdgeLists) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)
	fmt.Fprintln(tw, "# edge\tstart\tstop\tdistance\tpseudo_x\tpseudo_y\tsp\tshortest_distance")
	for i, l := range lists {
		err := l.Do(func(iw *geodesic.Interval) error {
			_, err := fmt.Fprintf(tw, "%d\t%.17g\t%.17g\t%.17g\t%.17g\t%.17g\t%.17g\t%.17g\n",
				i, iw.Start, iw.Stop, iw.D, iw.PseudoX, iw.PseudoY,
				iw.SP, iw.ShortestDistance)
			return err
		})
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}
