package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/geodesic"
)

// Check is the sub-command invoked when running "geodesic check".
var Check SubCommand

func init() {
	Check.Cmd = &cobra.Command{
		Use:   "check",
		Short: "Build the window lists and verify their invariants",
		Long: "Check builds the window list of every edge and verifies that " +
			"the lists are properly linked, ordered, non-overlapping, and " +
			"inside their edges.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, Check.Conf.GetBool("verbose"))
		},
	}
	Check.EnvPrefix = "GEODESIC_CHECK"
	Check.Cmd.Flags().Bool("verbose", false,
		"Print a summary line for every non-empty edge.")
}

func runCheck(cmd *cobra.Command, verbose bool) error {
	m, lists, err := load(Check.Conf)
	if err != nil {
		return err
	}

	used := 0
	for _, l := range lists {
		if l.Empty() {
			continue
		}
		used++
		if verbose {
			fmt.Fprintln(cmd.OutOrStdout(), summary(l))
		}
	}

	glog.Infof("%s windows on %s of %s edges pass all checks.",
		humanize.Comma(int64(lists.Count())),
		humanize.Comma(int64(used)), humanize.Comma(int64(len(m.Edges))))
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d windows, %d/%d edges covered\n",
		lists.Count(), used, len(m.Edges))
	return nil
}

// summary describes how much of a list's edge its windows cover.
func summary(l *geodesic.IntervalList) string {
	covered := 0.0
	_ = l.Do(func(w *geodesic.Interval) error {
		covered += w.Len()
		return nil
	})
	return fmt.Sprintf("edge %d: %d windows over [%g, %g], %.1f%% of length %g",
		l.Edge().ID(), l.Len(), l.Begin().Start, l.End().Stop,
		100*covered/l.Edge().Length(), l.Edge().Length())
}
