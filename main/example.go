package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/geodesic/io"
)

// Example is the sub-command invoked when running "geodesic example".
var Example SubCommand

func init() {
	Example.Cmd = &cobra.Command{
		Use:   "example [mesh|windows]",
		Short: "Print an example configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "mesh":
				fmt.Fprintln(cmd.OutOrStdout(), io.ExampleMeshFile)
			case "windows":
				fmt.Fprintln(cmd.OutOrStdout(), io.ExampleWindowFile)
			default:
				return fmt.Errorf(
					"Unrecognized example '%s'. Only recognized arguments "+
						"are 'mesh' and 'windows'.", args[0],
				)
			}
			return nil
		},
	}
	Example.EnvPrefix = "GEODESIC_EXAMPLE"
}
