package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/geodesic/query"
)

// Query is the sub-command invoked when running "geodesic query".
var Query SubCommand

func init() {
	Query.Cmd = &cobra.Command{
		Use:   "query [x...]",
		Short: "Evaluate the distance field along one edge",
		Long: "Query prints the distance at each parametric position x along " +
			"the edge given by --edge. Without any positions, it prints the " +
			"smallest distance on the edge and where it is reached.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args)
		},
	}
	Query.EnvPrefix = "GEODESIC_QUERY"
	Query.Cmd.Flags().Int("edge", 0, "Index of the edge to query.")
}

func runQuery(cmd *cobra.Command, args []string) error {
	xs := make([]float64, len(args))
	for i, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("Position '%s' does not parse as a float.", arg)
		}
		xs[i] = x
	}

	_, lists, err := load(Query.Conf)
	if err != nil {
		return err
	}
	l, err := edgeList(lists, Query.Conf.GetInt("edge"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(xs) == 0 {
		x, d, err := query.Min(l)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "min %.10g at x = %.10g\n", d, x)
		return nil
	}

	for _, x := range xs {
		d, err := query.Edge(l, x)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%.10g %.10g\n", x, d)
	}
	return nil
}
