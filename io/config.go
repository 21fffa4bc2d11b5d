package io

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/geodesic"
	"github.com/phil-mansfield/geodesic/mesh"
)

const (
	ExampleMeshFile = `[Mesh]

# Vertex positions, one "x y z" triple per line. Vertices are numbered in the
# order they are given, starting from zero.
Vertex = 0 0 0
Vertex = 1 0 0
Vertex = 1 1 0
Vertex = 0 1 0

# Triangles, given as three vertex indices. Edges are numbered in the order
# they are first encountered, so the first face's edges are 0, 1, and 2 (the
# edges opposite its first, second, and third vertex).
Face = 0 1 2
Face = 0 2 3`

	ExampleWindowFile = `# Each [Window "name"] section describes one window on a mesh edge. Names
# are only used in error messages.

[Window "a"]

#######################
# Required Parameters #
#######################

# Index of the edge the window lives on.
Edge = 0
# Parametric range of the window, measured from the edge's first vertex.
Start = 0
Stop = 0.5
# Coordinates of the pseudo-source in the edge's unfolded frame. PseudoY
# must not be positive.
PseudoX = 0.25
PseudoY = -1

#######################
# Optional Parameters #
#######################

# Distance from the source to the pseudo-source. Default is 0.
# Distance = 0
# SeparatingPoint = 0
# ShortestDistance = 0

[Window "b"]
Edge = 0
Start = 0.5
Stop = 1
PseudoX = 0.75
PseudoY = -1`
)

type MeshConfig struct {
	Vertex []string
	Face   []string
}

type MeshWrapper struct {
	Mesh MeshConfig
}

func parseFloats(s string, out []float64) error {
	fields := strings.Fields(s)
	if len(fields) != len(out) {
		return fmt.Errorf(
			"'%s' has %d values, but %d are needed", s, len(fields), len(out),
		)
	}
	for i := range fields {
		x, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return err
		}
		out[i] = x
	}
	return nil
}

// Mesh converts the vertex and face lines into a mesh.
func (con *MeshConfig) Mesh() (*mesh.Mesh, error) {
	if len(con.Vertex) < 3 {
		return nil, fmt.Errorf(
			"Need at least three 'Vertex' values, but got %d.", len(con.Vertex),
		)
	} else if len(con.Face) == 0 {
		return nil, fmt.Errorf("Need at least one 'Face' value.")
	}

	pts := make([]r3.Vector, len(con.Vertex))
	buf := make([]float64, 3)
	for i, line := range con.Vertex {
		if err := parseFloats(line, buf); err != nil {
			return nil, errors.Wrapf(err, "Vertex %d", i)
		}
		pts[i] = r3.Vector{X: buf[0], Y: buf[1], Z: buf[2]}
	}

	faces := make([][3]int, len(con.Face))
	for i, line := range con.Face {
		if err := parseFloats(line, buf); err != nil {
			return nil, errors.Wrapf(err, "Face %d", i)
		}
		for k := range faces[i] {
			if buf[k] != math.Trunc(buf[k]) {
				return nil, fmt.Errorf("Face %d has non-integer index %g.", i, buf[k])
			}
			faces[i][k] = int(buf[k])
		}
	}

	return mesh.New(pts, faces)
}

// ReadMeshConfig reads a mesh out of the config file fname.
func ReadMeshConfig(fname string) (*mesh.Mesh, error) {
	wrap := &MeshWrapper{}
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	m, err := wrap.Mesh.Mesh()
	if err != nil {
		return nil, errors.Wrapf(err, "reading mesh from %s", fname)
	}
	return m, nil
}

type WindowConfig struct {
	// Required
	Edge             int
	Start, Stop      float64
	PseudoX, PseudoY float64

	// Optional
	Distance         float64
	SeparatingPoint  float64
	ShortestDistance float64

	Name string
}

// CheckInit validates the window against a mesh with the given number of
// edges and records its name.
func (con *WindowConfig) CheckInit(name string, edges int) error {
	if con.Edge < 0 || con.Edge >= edges {
		return fmt.Errorf(
			"Edge of Window '%s' must be in range [0, %d), but is %d",
			name, edges, con.Edge,
		)
	}
	con.Name = name

	if _, err := con.Interval(); err != nil {
		return errors.Wrapf(err, "Window '%s'", name)
	}
	return nil
}

// Interval returns a new detached window with the configured values.
func (con *WindowConfig) Interval() (*geodesic.Interval, error) {
	w, err := geodesic.NewInterval(
		con.Start, con.Stop, con.Distance, con.PseudoX, con.PseudoY,
	)
	if err != nil {
		return nil, err
	}
	w.SP = con.SeparatingPoint
	w.ShortestDistance = con.ShortestDistance
	return w, w.Validate()
}

type WindowsWrapper struct {
	Window map[string]*WindowConfig
}

// ReadWindowConfig reads every window in the config file fname. The windows
// are sorted by edge and then by Start.
func ReadWindowConfig(fname string, edges int) ([]WindowConfig, error) {
	wrap := &WindowsWrapper{}
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}

	cons := make([]WindowConfig, 0, len(wrap.Window))
	for name, con := range wrap.Window {
		if err := con.CheckInit(name, edges); err != nil {
			return nil, err
		}
		cons = append(cons, *con)
	}
	SortWindows(cons)
	return cons, nil
}

// SortWindows orders windows by edge, then by Start.
func SortWindows(cons []WindowConfig) {
	sort.SliceStable(cons, func(i, j int) bool {
		if cons[i].Edge != cons[j].Edge {
			return cons[i].Edge < cons[j].Edge
		}
		return cons[i].Start < cons[j].Start
	})
}

// Insert adds every window to the list of its edge and checks the resulting
// lists.
func Insert(lists geodesic.EdgeLists, cons []WindowConfig) error {
	for i := range cons {
		con := &cons[i]
		if con.Edge < 0 || con.Edge >= len(lists) {
			return fmt.Errorf(
				"Window '%s' is on edge %d, but there are only %d edges.",
				con.Name, con.Edge, len(lists),
			)
		}
		w, err := con.Interval()
		if err != nil {
			return errors.Wrapf(err, "Window '%s'", con.Name)
		}
		if err := lists[con.Edge].InsertSorted(w); err != nil {
			return errors.Wrapf(err, "Window '%s'", con.Name)
		}
	}
	return lists.Check()
}
