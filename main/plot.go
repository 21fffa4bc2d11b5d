package main

import (
	"fmt"
	"math"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/geodesic"
	"github.com/phil-mansfield/geodesic/query"
)

// Plot is the sub-command invoked when running "geodesic plot".
var Plot SubCommand

func init() {
	Plot.Cmd = &cobra.Command{
		Use:   "plot",
		Short: "Plot the distance field along one edge",
		Long: "Plot samples every window of the edge given by --edge and " +
			"saves a figure of the distance along the edge, with window " +
			"boundaries marked. Requires python with matplotlib.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot()
		},
	}
	Plot.EnvPrefix = "GEODESIC_PLOT"
	Plot.Cmd.Flags().Int("edge", 0, "Index of the edge to plot.")
	Plot.Cmd.Flags().Int("samples", 50, "Number of samples per window.")
	Plot.Cmd.Flags().String("out", "distance.png", "Output figure file.")
}

func runPlot() error {
	_, lists, err := load(Plot.Conf)
	if err != nil {
		return err
	}
	edge := Plot.Conf.GetInt("edge")
	l, err := edgeList(lists, edge)
	if err != nil {
		return err
	}
	xs, ds, err := query.Profile(l, Plot.Conf.GetInt("samples"))
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("Edge %d has no windows to plot.", edge)
	}

	fname := Plot.Conf.GetString("out")
	plotProfile(l, xs, ds, fname)
	glog.Infof("Plotted %d windows of edge %d to %s.", l.Len(), edge, fname)
	return nil
}

func plotProfile(l *geodesic.IntervalList, xs, ds []float64, fname string) {
	lo, hi := math.Inf(+1), math.Inf(-1)
	for _, d := range ds {
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	pad := 0.05 * (hi - lo)
	if pad == 0 {
		pad = 1
	}

	plt.Reset()
	plt.Figure()
	_ = l.Do(func(w *geodesic.Interval) error {
		plt.Plot([]float64{w.Start, w.Start}, []float64{lo - pad, hi + pad},
			plt.C("DimGray"))
		return nil
	})
	plt.Plot(xs, ds, "k", plt.LW(2))

	plt.Title(fmt.Sprintf("Edge %d: %d windows", l.Edge().ID(), l.Len()))
	plt.XLabel(`$x$`, plt.FontSize(16))
	plt.YLabel(`$d(x)$`, plt.FontSize(16))
	plt.XLim(0, l.Edge().Length())
	plt.YLim(lo-pad, hi+pad)
	plt.SaveFig(fname)
	plt.Execute()
}
