package graph

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/internal/tensor"
)

func TestDOT_Structure(t *testing.T) {
	iso := testIsolate(t, 1*tensor.MiB)

	a := iso.NewTensor(4, 4).SetName("a")
	b := iso.NewTensor(4, 4).SetName("b")
	c := a.Add(b).SetName("c")

	out := DOT(c)

	assert.True(t, strings.HasPrefix(out, "digraph ComputationGraph {"))
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `label="a"`)
	assert.Contains(t, out, `label="b"`)
	assert.Contains(t, out, `label="c"`)
	assert.Contains(t, out, `label="+"`)
	assert.Contains(t, out, "springgreen2") // leaves
	assert.Contains(t, out, "lightskyblue") // derived
	assert.Equal(t, 3, strings.Count(out, "arrowhead=vee"), "two inputs plus one output edge")
}

func TestDOT_SharedNodeEmittedOnce(t *testing.T) {
	iso := testIsolate(t, 1*tensor.MiB)

	a := iso.NewTensor(4).SetName("shared")
	g := a.Add(a)

	out := DOT(g)
	assert.Equal(t, 1, strings.Count(out, `label="shared"`))
}

func TestDOT_UnnamedFallsBackToShape(t *testing.T) {
	iso := testIsolate(t, 1*tensor.MiB)

	a := iso.NewTensor(4, 2)
	out := DOT(a)
	assert.Contains(t, out, "[4 X 2 X 1 X 1]")
}

func TestWriteDOT(t *testing.T) {
	iso := testIsolate(t, 1*tensor.MiB)

	a := iso.NewTensor(4).SetName("a")
	g := a.Sigmoid().SetName("g")

	path := filepath.Join(t.TempDir(), "graph.dot")
	require.NoError(t, WriteDOT(path, g))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DOT(g), string(data))
}
