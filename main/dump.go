package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/geodesic/io"
)

// Dump is the sub-command invoked when running "geodesic dump".
var Dump SubCommand

func init() {
	Dump.Cmd = &cobra.Command{
		Use:   "dump",
		Short: "Write the window lists as YAML or as a window table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd)
		},
	}
	Dump.EnvPrefix = "GEODESIC_DUMP"
	Dump.Cmd.Flags().String("format", "yaml", "Output format, one of [yaml, table].")
	Dump.Cmd.Flags().String("out", "", "Output file. Defaults to stdout.")
}

func runDump(cmd *cobra.Command) (err error) {
	format := Dump.Conf.GetString("format")
	if format != "yaml" && format != "table" {
		return fmt.Errorf(
			"Unrecognized 'format' value '%s'. Only 'yaml' and 'table' are "+
				"accepted.", format,
		)
	}

	_, lists, err := load(Dump.Conf)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if fname := Dump.Conf.GetString("out"); fname != "" {
		var f *os.File
		if f, err = os.Create(fname); err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
		glog.V(2).Infof("Writing %s dump to %s.", format, fname)
	}

	if format == "yaml" {
		return io.WriteYAML(out, lists)
	}
	return io.WriteWindowTable(out, lists)
}
