package io

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/geodesic"
	"github.com/phil-mansfield/geodesic/mesh"
)

func writeFile(t *testing.T, name, contents string) string {
	fname := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fname, []byte(contents), 0644))
	return fname
}

func exampleLists(t *testing.T) (*mesh.Mesh, geodesic.EdgeLists) {
	m, err := ReadMeshConfig(writeFile(t, "mesh.cfg", ExampleMeshFile))
	require.NoError(t, err)

	cons, err := ReadWindowConfig(
		writeFile(t, "windows.cfg", ExampleWindowFile), len(m.Edges),
	)
	require.NoError(t, err)

	lists := geodesic.NewEdgeLists(m)
	require.NoError(t, Insert(lists, cons))
	return m, lists
}

func TestExampleMesh(t *testing.T) {
	m, err := ReadMeshConfig(writeFile(t, "mesh.cfg", ExampleMeshFile))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Faces, 2)
	assert.Len(t, m.Edges, 5)
	assert.InDelta(t, 1, m.Edges[0].Length(), 1e-15)
	assert.InDelta(t, math.Sqrt2, m.Edges[1].Length(), 1e-15)
}

func TestExampleWindows(t *testing.T) {
	_, lists := exampleLists(t)
	assert.Equal(t, 2, lists.Count())
	assert.Equal(t, 2, lists[0].Len())
	assert.Equal(t, 0.0, lists[0].Begin().Start)
	assert.Equal(t, 0.5, lists[0].End().Start)
	assert.Equal(t, 0.75, lists[0].End().PseudoX)
}

func TestMeshConfigErrors(t *testing.T) {
	table := []struct {
		name string
		con  MeshConfig
	}{
		{"few vertices", MeshConfig{Vertex: []string{"0 0 0"}, Face: []string{"0 1 2"}}},
		{"no faces", MeshConfig{Vertex: []string{"0 0 0", "1 0 0", "0 1 0"}}},
		{"short vertex", MeshConfig{
			Vertex: []string{"0 0", "1 0 0", "0 1 0"}, Face: []string{"0 1 2"},
		}},
		{"bad float", MeshConfig{
			Vertex: []string{"0 0 x", "1 0 0", "0 1 0"}, Face: []string{"0 1 2"},
		}},
		{"fractional index", MeshConfig{
			Vertex: []string{"0 0 0", "1 0 0", "0 1 0"}, Face: []string{"0 1.5 2"},
		}},
		{"bad index", MeshConfig{
			Vertex: []string{"0 0 0", "1 0 0", "0 1 0"}, Face: []string{"0 1 3"},
		}},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.con.Mesh()
			assert.Error(t, err)
		})
	}
}

func TestWindowConfigErrors(t *testing.T) {
	table := []struct {
		name string
		con  WindowConfig
	}{
		{"edge", WindowConfig{Edge: 5, Start: 0, Stop: 1, PseudoY: -1}},
		{"negative edge", WindowConfig{Edge: -1, Start: 0, Stop: 1, PseudoY: -1}},
		{"empty", WindowConfig{Start: 1, Stop: 1, PseudoY: -1}},
		{"above edge", WindowConfig{Start: 0, Stop: 1, PseudoY: 1}},
		{"bad sp", WindowConfig{Start: 0, Stop: 1, SeparatingPoint: math.NaN()}},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.con.CheckInit(tt.name, 5))
		})
	}

	con := WindowConfig{Edge: 4, Start: 0, Stop: 1, PseudoY: -1}
	require.NoError(t, con.CheckInit("ok", 5))
	assert.Equal(t, "ok", con.Name)
}

func TestInsertRejectsOverlap(t *testing.T) {
	m, err := ReadMeshConfig(writeFile(t, "mesh.cfg", ExampleMeshFile))
	require.NoError(t, err)
	lists := geodesic.NewEdgeLists(m)

	cons := []WindowConfig{
		{Edge: 0, Start: 0, Stop: 0.6, PseudoY: -1, Name: "a"},
		{Edge: 0, Start: 0.5, Stop: 1, PseudoY: -1, Name: "b"},
	}
	assert.ErrorIs(t, Insert(lists, cons), geodesic.ErrCorrupt)

	lists = geodesic.NewEdgeLists(m)
	cons = []WindowConfig{{Edge: 9, Start: 0, Stop: 1, PseudoY: -1, Name: "c"}}
	assert.Error(t, Insert(lists, cons))
}

func TestYAMLRoundTrip(t *testing.T) {
	m, lists := exampleLists(t)
	lists[0].Begin().SP = 0.4

	buf := &bytes.Buffer{}
	require.NoError(t, WriteYAML(buf, lists))
	assert.Contains(t, buf.String(), "pseudo_x: 0.25")

	cons, states, err := ReadYAML(buf, len(m.Edges))
	require.NoError(t, err)
	require.Len(t, cons, 2)
	assert.Equal(t, 0.4, cons[0].SeparatingPoint)
	assert.Equal(t, 0.5, cons[1].Start)
	require.Len(t, states, 1)
	assert.Equal(t, float64(geodesic.NoSeparatingPoint), states[0].SP)

	dump := Dump(lists)
	require.Len(t, dump, 1)
	assert.Equal(t, 0, dump[0].Edge)
	assert.Equal(t, float64(geodesic.NoSeparatingPoint), dump[0].SP)
}

func TestYAMLListState(t *testing.T) {
	m, lists := exampleLists(t)
	lists[0].SP, lists[0].PseudoX, lists[0].PseudoY = 0.5, 0.3, -2
	// An edge with a cache but no windows is written too.
	lists[3].SP, lists[3].PseudoX, lists[3].PseudoY = 0.25, 0.1, -0.5

	buf := &bytes.Buffer{}
	require.NoError(t, WriteYAML(buf, lists))

	cons, states, err := ReadYAML(buf, len(m.Edges))
	require.NoError(t, err)
	require.Len(t, states, 2)

	again := geodesic.NewEdgeLists(m)
	require.NoError(t, Insert(again, cons))
	require.NoError(t, ApplyListStates(again, states))

	for _, i := range []int{0, 3} {
		assert.Equal(t, lists[i].SP, again[i].SP, "edge %d", i)
		assert.Equal(t, lists[i].PseudoX, again[i].PseudoX, "edge %d", i)
		assert.Equal(t, lists[i].PseudoY, again[i].PseudoY, "edge %d", i)
	}
	assert.Equal(t, float64(geodesic.NoSeparatingPoint), again[1].SP)
	assert.True(t, again[3].Empty())
	assert.Equal(t, Dump(lists), Dump(again))

	bad := []ListState{{Edge: 9}}
	assert.Error(t, ApplyListStates(again, bad))
	bad = []ListState{{Edge: 0, SP: math.NaN()}}
	assert.Error(t, ApplyListStates(again, bad))
}

func TestWindowTable(t *testing.T) {
	m, lists := exampleLists(t)
	lists[0].End().ShortestDistance = 2

	buf := &bytes.Buffer{}
	require.NoError(t, WriteWindowTable(buf, lists))
	fname := writeFile(t, "windows.txt", buf.String())

	cons, err := ReadWindowTable(fname, len(m.Edges))
	require.NoError(t, err)
	require.Len(t, cons, 2)
	assert.Equal(t, 0, cons[0].Edge)
	assert.Equal(t, 0.25, cons[0].PseudoX)
	assert.Equal(t, 2.0, cons[1].ShortestDistance)

	again := geodesic.NewEdgeLists(m)
	require.NoError(t, Insert(again, cons))
	assert.Equal(t, lists.Count(), again.Count())
}
