package main

import (
	goflag "flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phil-mansfield/geodesic"
	"github.com/phil-mansfield/geodesic/io"
	"github.com/phil-mansfield/geodesic/mesh"
)

// SubCommand pairs a command with the viper instance its flags are bound to.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "geodesic",
	Short: "Inspect wavefront window lists on triangle meshes",
	Long: `
geodesic loads a triangle mesh and a set of wavefront windows (intervals of
mesh edges, each carrying one analytic piece of the geodesic distance field),
builds the per-edge window lists, and checks, queries, dumps, or plots them.`,
}

var rootConf = viper.New()

var windowSources = []string{"windows", "table", "yaml"}

func init() {
	RootCmd.PersistentFlags().String("mesh", "",
		"Mesh configuration file. See 'geodesic example mesh'.")
	RootCmd.PersistentFlags().String("windows", "",
		"Window configuration file. See 'geodesic example windows'.")
	RootCmd.PersistentFlags().String("table", "",
		"Window table with the columns: edge start stop distance pseudo_x "+
			"pseudo_y sp shortest_distance.")
	RootCmd.PersistentFlags().String("yaml", "",
		"Window lists written by 'geodesic dump --format yaml'.")
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden by values set with environment variables and flags.")
	_ = rootConf.BindPFlags(RootCmd.PersistentFlags())

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			if err := sc.Conf.ReadInConfig(); err != nil {
				glog.Fatalf("Reading config %s: %v", cfg, err)
			}
		}
	})
}

var subcommands = []*SubCommand{&Check, &Query, &Dump, &Plot, &Example}

var registerOnce sync.Once

// register adds the subcommands to RootCmd. Subcommands are built by the
// init functions of their own files, so this can't run from init.
func register() {
	registerOnce.Do(func() {
		for _, sc := range subcommands {
			RootCmd.AddCommand(sc.Cmd)
			sc.Conf = viper.New()
			_ = sc.Conf.BindPFlags(sc.Cmd.Flags())
			_ = sc.Conf.BindPFlags(RootCmd.PersistentFlags())
			sc.Conf.SetEnvPrefix(sc.EnvPrefix)
			sc.Conf.AutomaticEnv()
		}
	})
}

// Execute runs RootCmd with the given arguments.
func Execute(args []string) error {
	register()
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

// getSourceName returns the one window source that has been set.
func getSourceName(conf *viper.Viper) (string, error) {
	setNames := []string{}
	for _, name := range windowSources {
		if conf.GetString(name) != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf(
			"No window source has been set. Use one of --%s.",
			strings.Join(windowSources, ", --"),
		)
	} else if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following window sources were set: %s, but only one can "+
				"be used at a time.", strings.Join(setNames, ", "),
		)
	}
	return setNames[0], nil
}

// load reads the mesh and windows named by conf and builds the edge lists.
func load(conf *viper.Viper) (*mesh.Mesh, geodesic.EdgeLists, error) {
	meshFile := conf.GetString("mesh")
	if meshFile == "" {
		return nil, nil, fmt.Errorf("Invalid/non-existent 'mesh' value.")
	}
	m, err := io.ReadMeshConfig(meshFile)
	if err != nil {
		return nil, nil, err
	}
	glog.V(2).Infof("Read mesh %s: %d vertices, %d edges, %d faces.",
		meshFile, len(m.Vertices), len(m.Edges), len(m.Faces))

	source, err := getSourceName(conf)
	if err != nil {
		return nil, nil, err
	}
	fname := conf.GetString(source)

	var cons []io.WindowConfig
	var states []io.ListState
	switch source {
	case "windows":
		cons, err = io.ReadWindowConfig(fname, len(m.Edges))
	case "table":
		cons, err = io.ReadWindowTable(fname, len(m.Edges))
	case "yaml":
		var f *os.File
		if f, err = os.Open(fname); err == nil {
			cons, states, err = io.ReadYAML(f, len(m.Edges))
			f.Close()
		}
	default:
		panic("Impossible")
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading windows from %s", fname)
	}

	lists := geodesic.NewEdgeLists(m)
	if err := io.Insert(lists, cons); err != nil {
		return nil, nil, errors.Wrapf(err, "building window lists from %s", fname)
	}
	if err := io.ApplyListStates(lists, states); err != nil {
		return nil, nil, errors.Wrapf(err, "restoring list state from %s", fname)
	}
	glog.V(2).Infof("Read %d windows from %s.", len(cons), fname)
	return m, lists, nil
}

// edgeList returns the list of the edge with the given index.
func edgeList(lists geodesic.EdgeLists, edge int) (*geodesic.IntervalList, error) {
	if edge < 0 || edge >= len(lists) {
		return nil, fmt.Errorf(
			"Edge must be in range [0, %d), but is %d.", len(lists), edge,
		)
	}
	return lists[edge], nil
}

func main() {
	// glog reads its flags through pflag; this only marks them as parsed.
	_ = goflag.CommandLine.Parse([]string{})
	defer glog.Flush()

	if err := Execute(os.Args[1:]); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}
