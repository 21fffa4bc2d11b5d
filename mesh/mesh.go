/*package mesh contains the triangle-mesh topology that wavefront windows live
on. It only provides stable identity and adjacency for vertices, edges, and
faces, plus the handful of lengths and corner angles computed once at load.
*/
package mesh

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// ErrMesh is returned (wrapped) for any malformed mesh input.
var ErrMesh = errors.New("invalid mesh")

// Vertex is a mesh vertex.
type Vertex struct {
	Pos r3.Vector

	id    int
	edges []*Edge
	faces []*Face
}

// Edge is an undirected mesh edge shared by one or two faces.
type Edge struct {
	id     int
	v      [2]*Vertex
	faces  []*Face
	length float64
}

// Face is a triangle. Edge i is the edge opposite vertex i.
type Face struct {
	id     int
	v      [3]*Vertex
	e      [3]*Edge
	angles [3]float64
}

// Mesh owns every vertex, edge, and face. Pointers into a Mesh are stable for
// its lifetime.
type Mesh struct {
	Vertices []Vertex
	Edges    []Edge
	Faces    []Face
}

func (v *Vertex) ID() int { return v.id }
func (v *Vertex) Edges() []*Edge { return v.edges }
func (v *Vertex) Faces() []*Face { return v.faces }
func (v *Vertex) String() string { return fmt.Sprintf("v%d", v.id) }

func (e *Edge) ID() int { return e.id }
func (e *Edge) Vertex(i int) *Vertex { return e.v[i] }
func (e *Edge) Length() float64 { return e.length }
func (e *Edge) Faces() []*Face { return e.faces }
func (e *Edge) String() string { return fmt.Sprintf("e%d(%v-%v)", e.id, e.v[0], e.v[1]) }

// Has returns true if v is one of the edge's endpoints.
func (e *Edge) Has(v *Vertex) bool { return e.v[0] == v || e.v[1] == v }

// Other returns the endpoint which isn't v, or nil if v isn't an endpoint.
func (e *Edge) Other(v *Vertex) *Vertex {
	switch v {
	case e.v[0]:
		return e.v[1]
	case e.v[1]:
		return e.v[0]
	}
	return nil
}

// OppositeFace returns the face on the other side of the edge from f. It is
// nil for boundary edges.
func (e *Edge) OppositeFace(f *Face) *Face {
	for _, g := range e.faces {
		if g != f {
			return g
		}
	}
	return nil
}

func (f *Face) ID() int { return f.id }
func (f *Face) Vertex(i int) *Vertex { return f.v[i] }
func (f *Face) Edge(i int) *Edge { return f.e[i] }
func (f *Face) String() string { return fmt.Sprintf("f%d", f.id) }

// Has returns true if v is a corner of f.
func (f *Face) Has(v *Vertex) bool { return f.corner(v) >= 0 }

func (f *Face) corner(v *Vertex) int {
	for i := range f.v {
		if f.v[i] == v {
			return i
		}
	}
	return -1
}

// OppositeVertex returns the corner of f which isn't on e, or nil if e isn't
// one of f's edges.
func (f *Face) OppositeVertex(e *Edge) *Vertex {
	for i := range f.e {
		if f.e[i] == e {
			return f.v[i]
		}
	}
	return nil
}

// OppositeEdge returns the edge of f which doesn't touch v.
func (f *Face) OppositeEdge(v *Vertex) *Edge {
	if i := f.corner(v); i >= 0 {
		return f.e[i]
	}
	return nil
}

// Angle returns the interior angle of f at corner v in radians, or zero if v
// isn't a corner.
func (f *Face) Angle(v *Vertex) float64 {
	if i := f.corner(v); i >= 0 {
		return f.angles[i]
	}
	return 0
}

type edgeKey [2]int

func newEdgeKey(i, j int) edgeKey {
	if i > j {
		i, j = j, i
	}
	return edgeKey{i, j}
}

// New builds a mesh out of vertex positions and triangles given as triples
// of vertex indices.
func New(points []r3.Vector, faces [][3]int) (*Mesh, error) {
	m := &Mesh{
		Vertices: make([]Vertex, len(points)),
		Faces:    make([]Face, len(faces)),
	}
	for i := range points {
		m.Vertices[i] = Vertex{Pos: points[i], id: i}
	}

	// Edges get appended to m.Edges, so faces first store indices and are
	// converted to pointers once the slice stops growing.
	edgeIdx := make(map[edgeKey]int)
	var keys []edgeKey
	faceEdges := make([][3]int, len(faces))
	for fi, tri := range faces {
		for k, vi := range tri {
			if vi < 0 || vi >= len(points) {
				return nil, errors.Wrapf(ErrMesh,
					"face %d references vertex %d, but there are %d vertices",
					fi, vi, len(points))
			}
			if tri[(k+1)%3] == vi {
				return nil, errors.Wrapf(ErrMesh,
					"face %d repeats vertex %d", fi, vi)
			}
		}

		for k := range tri {
			key := newEdgeKey(tri[(k+1)%3], tri[(k+2)%3])
			idx, ok := edgeIdx[key]
			if !ok {
				idx = len(m.Edges)
				edgeIdx[key] = idx
				m.Edges = append(m.Edges, Edge{id: idx})
				keys = append(keys, key)
			}
			faceEdges[fi][k] = idx
		}
	}

	for idx, key := range keys {
		e := &m.Edges[idx]
		e.v[0], e.v[1] = &m.Vertices[key[0]], &m.Vertices[key[1]]
		e.length = e.v[0].Pos.Distance(e.v[1].Pos)
		if e.length == 0 {
			return nil, errors.Wrapf(ErrMesh,
				"edge between vertices %d and %d has zero length", key[0], key[1])
		}
		e.v[0].edges = append(e.v[0].edges, e)
		e.v[1].edges = append(e.v[1].edges, e)
	}

	for fi, tri := range faces {
		f := &m.Faces[fi]
		f.id = fi
		for k := range tri {
			f.v[k] = &m.Vertices[tri[k]]
			f.e[k] = &m.Edges[faceEdges[fi][k]]
		}
		for k := range tri {
			e := f.e[k]
			if len(e.faces) == 2 {
				return nil, errors.Wrapf(ErrMesh,
					"edge %d is shared by more than two faces", e.id)
			}
			e.faces = append(e.faces, f)
			f.v[k].faces = append(f.v[k].faces, f)

			a := f.v[(k+1)%3].Pos.Sub(f.v[k].Pos)
			b := f.v[(k+2)%3].Pos.Sub(f.v[k].Pos)
			f.angles[k] = float64(a.Angle(b))
		}
	}

	return m, nil
}
