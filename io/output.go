package io

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/geodesic"
)

// EdgeDump is the serialized form of one edge's window list.
type EdgeDump struct {
	Edge        int          `yaml:"edge"`
	Length      float64      `yaml:"length"`
	StartVertex int          `yaml:"start_vertex"`
	SP          float64      `yaml:"sp"`
	PseudoX     float64      `yaml:"pseudo_x"`
	PseudoY     float64      `yaml:"pseudo_y"`
	Windows     []WindowDump `yaml:"windows,omitempty"`
}

// ListState is the list-level pseudo-source cache of one edge.
type ListState struct {
	Edge                 int
	SP, PseudoX, PseudoY float64
}

// CheckInit checks that the state refers to an existing edge and holds
// finite values.
func (s *ListState) CheckInit(edges int) error {
	if s.Edge < 0 || s.Edge >= edges {
		return fmt.Errorf(
			"List state has edge %d, but the mesh only has %d edges.",
			s.Edge, edges,
		)
	}
	for _, x := range []float64{s.SP, s.PseudoX, s.PseudoY} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("List state of edge %d has non-finite value %g.",
				s.Edge, x)
		}
	}
	return nil
}

// ApplyListStates copies each state onto the list of its edge.
func ApplyListStates(lists geodesic.EdgeLists, states []ListState) error {
	for i := range states {
		s := &states[i]
		if err := s.CheckInit(len(lists)); err != nil {
			return err
		}
		l := lists[s.Edge]
		l.SP, l.PseudoX, l.PseudoY = s.SP, s.PseudoX, s.PseudoY
	}
	return nil
}

// hasState returns true if l carries a list-level cache worth writing.
func hasState(l *geodesic.IntervalList) bool {
	return l.SP != geodesic.NoSeparatingPoint || l.PseudoX != 0 || l.PseudoY != 0
}

// WindowDump is the serialized form of one window.
type WindowDump struct {
	Start            float64 `yaml:"start"`
	Stop             float64 `yaml:"stop"`
	Distance         float64 `yaml:"distance"`
	PseudoX          float64 `yaml:"pseudo_x"`
	PseudoY          float64 `yaml:"pseudo_y"`
	SeparatingPoint  float64 `yaml:"sp"`
	ShortestDistance float64 `yaml:"shortest_distance"`
}

// Dump converts every list that holds windows or a list-level cache to its
// serialized form. Lists must be bound to edges.
func Dump(lists geodesic.EdgeLists) []EdgeDump {
	var out []EdgeDump
	for _, l := range lists {
		if l.Empty() && !hasState(l) {
			continue
		}

		ed := EdgeDump{
			Edge:        l.Edge().ID(),
			Length:      l.Edge().Length(),
			StartVertex: l.StartVertex.ID(),
			SP:          l.SP,
			PseudoX:     l.PseudoX,
			PseudoY:     l.PseudoY,
			Windows:     make([]WindowDump, 0, l.Len()),
		}
		for _, w := range l.Slice() {
			ed.Windows = append(ed.Windows, WindowDump{
				Start: w.Start, Stop: w.Stop, Distance: w.D,
				PseudoX: w.PseudoX, PseudoY: w.PseudoY,
				SeparatingPoint: w.SP, ShortestDistance: w.ShortestDistance,
			})
		}
		out = append(out, ed)
	}
	return out
}

// WriteYAML writes the window lists as a YAML document.
func WriteYAML(w io.Writer, lists geodesic.EdgeLists) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Dump(lists)); err != nil {
		return err
	}
	return enc.Close()
}

// ReadYAML reads a document written by WriteYAML back into window configs
// and the list-level state of every edge in it. The states are applied with
// ApplyListStates once the windows have been inserted.
func ReadYAML(r io.Reader, edges int) ([]WindowConfig, []ListState, error) {
	var dumps []EdgeDump
	if err := yaml.NewDecoder(r).Decode(&dumps); err != nil && err != io.EOF {
		return nil, nil, err
	}

	var cons []WindowConfig
	states := make([]ListState, 0, len(dumps))
	for _, ed := range dumps {
		s := ListState{
			Edge: ed.Edge, SP: ed.SP, PseudoX: ed.PseudoX, PseudoY: ed.PseudoY,
		}
		if err := s.CheckInit(edges); err != nil {
			return nil, nil, err
		}
		states = append(states, s)

		for i, wd := range ed.Windows {
			con := WindowConfig{
				Edge: ed.Edge, Start: wd.Start, Stop: wd.Stop,
				PseudoX: wd.PseudoX, PseudoY: wd.PseudoY, Distance: wd.Distance,
				SeparatingPoint: wd.SeparatingPoint, ShortestDistance: wd.ShortestDistance,
			}
			name := fmt.Sprintf("edge %d window %d", ed.Edge, i)
			if err := con.CheckInit(name, edges); err != nil {
				return nil, nil, err
			}
			cons = append(cons, con)
		}
	}
	SortWindows(cons)
	return cons, states, nil
}
