// Package model records the parts emitted while a program runs.  Parts are
// placed into named groups and positioned by the transformation matrix that
// is current when they are added.
package model

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultColor is the LDraw "main color" used by primitives without an
// explicit color.
const DefaultColor = "16"

// MainGroup is the name of the group every model starts with.
const MainGroup = "main"

// Kind identifies the type of a Part.
type Kind string

// Possible Kind values
const (
	KindPart          Kind = "part"
	KindLine          Kind = "line"
	KindTriangle      Kind = "triangle"
	KindQuadrilateral Kind = "quadrilateral"
	KindOptionalLine  Kind = "optional-line"
	KindComment       Kind = "comment"
)

// Part is one element of a model: a part reference, a geometric primitive or
// a comment.
type Part struct {
	Kind   Kind     `yaml:"kind"`
	ID     string   `yaml:"id,omitempty"`
	Color  string   `yaml:"color,omitempty"`
	Step   float64  `yaml:"step"`
	Matrix Matrix   `yaml:"-"`
	Coords []Vector `yaml:"coords,omitempty,flow"`
	Text   string   `yaml:"text,omitempty"`
	Group  string   `yaml:"group"`
	Seq    int      `yaml:"-"`
}

func (p *Part) String() string {
	switch p.Kind {
	case KindPart:
		return fmt.Sprintf("%s %s %s", p.Kind, p.ID, p.Color)
	case KindComment:
		return fmt.Sprintf("%s %q", p.Kind, p.Text)
	default:
		return fmt.Sprintf("%s %s %v", p.Kind, p.Color, p.Coords)
	}
}

// Group is a named collection of parts, written as a separate sub-file by
// multi-part output formats.
type Group struct {
	Name     string
	Header   []string
	parts    []*Part
	comments bool
	matrix   Matrix
}

// Parts returns the parts in the group.  They are ordered by step, keeping
// emission order for equal steps, unless the group contains comments in
// which case emission order is preserved entirely.
func (g *Group) Parts() []*Part {
	parts := append([]*Part(nil), g.parts...)
	if !g.comments {
		sort.SliceStable(parts, func(i, j int) bool { return parts[i].Step < parts[j].Step })
	}
	return parts
}

// Model is the output of a run.
type Model struct {
	groups []*Group
	stack  []*Group
	names  map[string]bool
	seq    int
}

// New returns an empty model whose current group is MainGroup.
func New() *Model {
	m := &Model{names: make(map[string]bool)}
	m.pushGroup(MainGroup) //nolint:errcheck
	return m
}

func (m *Model) pushGroup(name string) error {
	if m.names[name] {
		return fmt.Errorf("group already exists: %s", name)
	}
	g := &Group{Name: name, matrix: Identity()}
	m.names[name] = true
	m.groups = append(m.groups, g)
	m.stack = append(m.stack, g)
	return nil
}

// Current returns the group parts are currently added to.
func (m *Model) Current() *Group {
	return m.stack[len(m.stack)-1]
}

// Groups returns all groups in creation order.
func (m *Model) Groups() []*Group {
	return append([]*Group(nil), m.groups...)
}

// Group returns the group called name.
func (m *Model) Group(name string) (*Group, bool) {
	for _, g := range m.groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}

// Matrix returns the transformation matrix of the current group.
func (m *Model) Matrix() Matrix {
	return m.Current().matrix
}

// WithMatrix multiplies the current matrix by t while fn runs.  The previous
// matrix is restored even if fn fails.
func (m *Model) WithMatrix(t Matrix, fn func() error) error {
	g := m.Current()
	prev := g.matrix
	g.matrix = prev.Mul(t)
	defer func() { g.matrix = prev }()
	return fn()
}

// WithGroup creates a new group called name and adds parts to it while fn
// runs.  A new group starts with the identity matrix and group names must be
// unique within the model.
func (m *Model) WithGroup(name string, fn func() error) error {
	err := m.pushGroup(name)
	if err != nil {
		return err
	}
	defer func() { m.stack = m.stack[:len(m.stack)-1] }()
	return fn()
}

func (m *Model) add(p *Part) *Part {
	g := m.Current()
	p.Group = g.Name
	p.Seq = m.seq
	m.seq++
	g.parts = append(g.parts, p)
	return p
}

// AddPart adds a reference to the part id placed by the current matrix.
func (m *Model) AddPart(id, color string, step float64) *Part {
	return m.add(&Part{
		Kind:   KindPart,
		ID:     id,
		Color:  color,
		Step:   step,
		Matrix: m.Matrix(),
	})
}

// AddPrimitive adds a line, triangle, quadrilateral or optional line.  The
// vertices are transformed by the current matrix.
func (m *Model) AddPrimitive(kind Kind, vertices []Vector, color string, step float64) (*Part, error) {
	want := map[Kind]int{
		KindLine:          2,
		KindTriangle:      3,
		KindQuadrilateral: 4,
		KindOptionalLine:  4,
	}
	n, ok := want[kind]
	if !ok {
		return nil, fmt.Errorf("not a primitive: %s", kind)
	}
	if len(vertices) != n {
		return nil, fmt.Errorf("%s: expected %d vertices, got %d", kind, n, len(vertices))
	}
	if color == "" {
		color = DefaultColor
	}
	mat := m.Matrix()
	coords := make([]Vector, len(vertices))
	for i, v := range vertices {
		coords[i] = mat.Apply(v)
	}
	return m.add(&Part{
		Kind:   kind,
		Color:  color,
		Step:   step,
		Matrix: mat,
		Coords: coords,
	}), nil
}

// AddComment adds a comment line to the body of the current group.  A group
// with comments keeps its parts in emission order.
func (m *Model) AddComment(text string) *Part {
	m.Current().comments = true
	return m.add(&Part{Kind: KindComment, Text: text})
}

// AddHeader appends a line to the header of the current group.
func (m *Model) AddHeader(text string) {
	g := m.Current()
	g.Header = append(g.Header, text)
}

// Parts returns every part of every group, group by group in creation order.
func (m *Model) Parts() []*Part {
	var parts []*Part
	for _, g := range m.groups {
		parts = append(parts, g.Parts()...)
	}
	return parts
}

// Len returns the number of parts in the model.
func (m *Model) Len() int {
	return m.seq
}

type yamlPart struct {
	Part      `yaml:",inline"`
	Transform []float64 `yaml:"transform,omitempty,flow"`
}

type yamlGroup struct {
	Name   string     `yaml:"name"`
	Header []string   `yaml:"header,omitempty"`
	Parts  []yamlPart `yaml:"parts"`
}

// WriteYAML writes the groups of m and their parts to w.
func (m *Model) WriteYAML(w io.Writer) error {
	var doc struct {
		Groups []yamlGroup `yaml:"groups"`
	}
	for _, g := range m.groups {
		yg := yamlGroup{Name: g.Name, Header: g.Header, Parts: []yamlPart{}}
		for _, p := range g.Parts() {
			yp := yamlPart{Part: *p}
			if p.Kind == KindPart {
				c := p.Matrix.LDraw()
				yp.Transform = c[:]
			}
			yg.Parts = append(yg.Parts, yp)
		}
		doc.Groups = append(doc.Groups, yg)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(&doc)
	if err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return enc.Close()
}
