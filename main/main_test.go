package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/geodesic/io"
)

// run executes the command line with every flag reset to its default, since
// cobra keeps flag values between executions.
func run(t *testing.T, args ...string) (string, error) {
	register()
	reset := func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	RootCmd.PersistentFlags().VisitAll(reset)
	for _, sc := range subcommands {
		sc.Cmd.Flags().VisitAll(reset)
	}

	out := &bytes.Buffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(&bytes.Buffer{})
	err := Execute(args)
	return out.String(), err
}

func exampleFiles(t *testing.T) (meshFile, windowFile string) {
	dir := t.TempDir()
	meshFile = filepath.Join(dir, "mesh.cfg")
	windowFile = filepath.Join(dir, "windows.cfg")
	require.NoError(t, os.WriteFile(meshFile, []byte(io.ExampleMeshFile), 0644))
	require.NoError(t, os.WriteFile(windowFile, []byte(io.ExampleWindowFile), 0644))
	return meshFile, windowFile
}

func TestGetSourceName(t *testing.T) {
	conf := viper.New()
	_, err := getSourceName(conf)
	assert.Error(t, err)

	conf.Set("table", "windows.txt")
	name, err := getSourceName(conf)
	require.NoError(t, err)
	assert.Equal(t, "table", name)

	conf.Set("yaml", "windows.yaml")
	_, err = getSourceName(conf)
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	meshFile, windowFile := exampleFiles(t)

	out, err := run(t, "check", "--mesh", meshFile, "--windows", windowFile, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 windows, 1/5 edges covered")
	assert.Contains(t, out, "edge 0: 2 windows over [0, 1], 100.0% of length 1")

	_, err = run(t, "check", "--mesh", meshFile)
	assert.Error(t, err)
	_, err = run(t, "check", "--windows", windowFile)
	assert.Error(t, err)
}

func TestQueryCommand(t *testing.T) {
	meshFile, windowFile := exampleFiles(t)

	out, err := run(t, "query", "--mesh", meshFile, "--windows", windowFile,
		"--edge", "0", "0.25", "0.75")
	require.NoError(t, err)
	assert.Equal(t, "0.25 1\n0.75 1\n", out)

	out, err = run(t, "query", "--mesh", meshFile, "--windows", windowFile)
	require.NoError(t, err)
	assert.Equal(t, "min 1 at x = 0.25\n", out)

	_, err = run(t, "query", "--mesh", meshFile, "--windows", windowFile,
		"--edge", "1", "0.5")
	assert.Error(t, err)
	_, err = run(t, "query", "--mesh", meshFile, "--windows", windowFile,
		"--edge", "7")
	assert.Error(t, err)
	_, err = run(t, "query", "--mesh", meshFile, "--windows", windowFile, "x")
	assert.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	meshFile, windowFile := exampleFiles(t)
	dir := t.TempDir()

	// YAML and table dumps can be read back in as window sources.
	yamlFile := filepath.Join(dir, "windows.yaml")
	_, err := run(t, "dump", "--mesh", meshFile, "--windows", windowFile,
		"--out", yamlFile)
	require.NoError(t, err)
	out, err := run(t, "check", "--mesh", meshFile, "--yaml", yamlFile)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 windows")

	tableOut, err := run(t, "dump", "--mesh", meshFile, "--windows", windowFile,
		"--format", "table")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tableOut, "# edge"))

	tableFile := filepath.Join(dir, "windows.txt")
	require.NoError(t, os.WriteFile(tableFile, []byte(tableOut), 0644))
	out, err = run(t, "check", "--mesh", meshFile, "--table", tableFile)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 windows")

	_, err = run(t, "dump", "--mesh", meshFile, "--windows", windowFile,
		"--format", "json")
	assert.Error(t, err)
	_, err = run(t, "dump", "--mesh", meshFile, "--windows", windowFile,
		"--out", filepath.Join(dir, "missing", "windows.yaml"))
	assert.Error(t, err)
}

func TestDumpKeepsListState(t *testing.T) {
	meshFile, _ := exampleFiles(t)
	yamlFile := filepath.Join(t.TempDir(), "windows.yaml")
	doc := `- edge: 0
  sp: 0.5
  pseudo_x: 0.3
  pseudo_y: -2
  windows:
    - {start: 0, stop: 1, distance: 0, pseudo_x: 0.5, pseudo_y: -1, sp: 0, shortest_distance: 0}
- edge: 2
  sp: 0.25
  pseudo_x: 0.1
  pseudo_y: -0.5
`
	require.NoError(t, os.WriteFile(yamlFile, []byte(doc), 0644))

	out, err := run(t, "dump", "--mesh", meshFile, "--yaml", yamlFile)
	require.NoError(t, err)
	assert.Contains(t, out, "sp: 0.5\n")
	assert.Contains(t, out, "pseudo_x: 0.3\n")
	assert.Contains(t, out, "pseudo_y: -2\n")
	assert.Contains(t, out, "- edge: 2")
	assert.Contains(t, out, "pseudo_y: -0.5")
}

func TestExampleCommand(t *testing.T) {
	out, err := run(t, "example", "mesh")
	require.NoError(t, err)
	assert.Equal(t, io.ExampleMeshFile+"\n", out)

	out, err = run(t, "example", "windows")
	require.NoError(t, err)
	assert.Equal(t, io.ExampleWindowFile+"\n", out)

	_, err = run(t, "example", "bounds")
	assert.Error(t, err)
}
