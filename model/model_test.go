package model

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func assertVector(t *testing.T, expect, actual Vector) {
	t.Helper()
	for i := range expect {
		assert.InDelta(t, expect[i], actual[i], 1e-9, "component %d of %v", i, actual)
	}
}

func TestMatrix(t *testing.T) {
	v := Vector{1, 2, 3}
	assertVector(t, v, Identity().Apply(v))
	assertVector(t, Vector{11, 22, 33}, Translation(10, 20, 30).Apply(v))
	assertVector(t, Vector{2, 6, 12}, Scale(2, 3, 4).Apply(v))
	assertVector(t, Vector{-1, 2, -3}, Mirror(true, false, true).Apply(v))

	// rotating about z by 90 degrees takes x onto y
	assertVector(t, Vector{0, 1, 0}, Rotation(0, 0, 90).Apply(Vector{1, 0, 0}))
	assertVector(t, Vector{0, 0, 1}, Rotation(90, 0, 0).Apply(Vector{0, 1, 0}))

	m := Translation(1, 0, 0).Mul(Rotation(0, 0, 90))
	assertVector(t, Vector{1, 1, 0}, m.Apply(Vector{1, 0, 0}))

	c := [12]float64{1, 2, 3, 1, 0, 0, 0, 1, 0, 0, 0, 1}
	assert.Equal(t, Translation(1, 2, 3), FromLDraw(c))
	assert.Equal(t, c, FromLDraw(c).LDraw())
	assert.False(t, math.IsNaN(Rotation(30, 45, 60)[0][0]))
}

func TestModel(t *testing.T) {
	m := New()
	assert.Equal(t, MainGroup, m.Current().Name)

	m.AddHeader("FILE test")
	p1 := m.AddPart("3001", "4", 2)
	err := m.WithMatrix(Translation(0, 0, 10), func() error {
		m.AddPart("3002", "1", 1)
		_, err := m.AddPrimitive(KindLine, []Vector{{0, 0, 0}, {1, 0, 0}}, "", 0)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, Identity(), m.Matrix())

	parts := m.Parts()
	require.Len(t, parts, 3)
	assert.Equal(t, KindLine, parts[0].Kind)
	assert.Equal(t, DefaultColor, parts[0].Color)
	assertVector(t, Vector{1, 0, 10}, parts[0].Coords[1])
	assert.Equal(t, "3002", parts[1].ID)
	assert.Equal(t, 10.0, parts[1].Matrix[2][3])
	assert.Same(t, p1, parts[2])
	assert.Equal(t, []string{"FILE test"}, m.Current().Header)
}

func TestModel_restoresMatrixOnError(t *testing.T) {
	m := New()
	fail := errors.New("fail")
	err := m.WithMatrix(Rotation(0, 90, 0), func() error { return fail })
	assert.Equal(t, fail, err)
	assert.Equal(t, Identity(), m.Matrix())
}

func TestModel_groups(t *testing.T) {
	m := New()
	err := m.WithMatrix(Translation(5, 0, 0), func() error {
		return m.WithGroup("sub", func() error {
			assert.Equal(t, Identity(), m.Matrix())
			m.AddPart("3001", "4", 0)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, MainGroup, m.Current().Name)
	g, ok := m.Group("sub")
	require.True(t, ok)
	require.Len(t, g.Parts(), 1)
	assert.Equal(t, "sub", g.Parts()[0].Group)

	err = m.WithGroup("sub", func() error { return nil })
	assert.Error(t, err)
	err = m.WithGroup(MainGroup, func() error { return nil })
	assert.Error(t, err)
}

func TestModel_commentsKeepOrder(t *testing.T) {
	m := New()
	m.AddPart("a", "1", 3)
	m.AddComment("STEP")
	m.AddPart("b", "1", 1)
	parts := m.Parts()
	require.Len(t, parts, 3)
	assert.Equal(t, "a", parts[0].ID)
	assert.Equal(t, KindComment, parts[1].Kind)
	assert.Equal(t, "b", parts[2].ID)
}

func TestModel_primitiveVertices(t *testing.T) {
	m := New()
	_, err := m.AddPrimitive(KindTriangle, []Vector{{0, 0, 0}}, "", 0)
	assert.Error(t, err)
	_, err = m.AddPrimitive(KindPart, nil, "", 0)
	assert.Error(t, err)
}

func TestModel_WriteYAML(t *testing.T) {
	m := New()
	m.AddHeader("FILE test")
	m.AddPart("3001", "4", 0)
	var buf bytes.Buffer
	require.NoError(t, m.WriteYAML(&buf))

	var doc struct {
		Groups []struct {
			Name   string   `yaml:"name"`
			Header []string `yaml:"header"`
			Parts  []struct {
				Kind      string    `yaml:"kind"`
				ID        string    `yaml:"id"`
				Color     string    `yaml:"color"`
				Transform []float64 `yaml:"transform"`
			} `yaml:"parts"`
		} `yaml:"groups"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Groups, 1)
	assert.Equal(t, MainGroup, doc.Groups[0].Name)
	assert.Equal(t, []string{"FILE test"}, doc.Groups[0].Header)
	require.Len(t, doc.Groups[0].Parts, 1)
	p := doc.Groups[0].Parts[0]
	assert.Equal(t, "part", p.Kind)
	assert.Equal(t, "3001", p.ID)
	assert.Equal(t, "4", p.Color)
	assert.Equal(t, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1}, p.Transform)
}
