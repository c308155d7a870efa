// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-ml/ember/graph"
	"github.com/ember-ml/ember/tensor"
)

func TestPublicSurface(t *testing.T) {
	require.True(t, tensor.Init())
	defer tensor.Shutdown()

	iso := tensor.NewIsolate("public-surface", tensor.AutoSelect, 64*tensor.KiB)
	defer iso.Close()

	assert.Equal(t, "public-surface", iso.Name())
	assert.Equal(t, tensor.CPU, iso.Device())
	assert.Equal(t, 64*tensor.KiB, iso.Pool().Capacity())

	a := iso.NewTensor(4, 4).FillOne().SetName("a")
	b := iso.NewTensorWithData(make([]float32, 16), 4, 4).SetName("b")
	c := a.Add(b)
	assert.Equal(t, tensor.OpAdd, c.Op())

	graph.Compute(c)
	for _, v := range c.Data() {
		assert.EqualValues(t, 1, v)
	}

	assert.Same(t, iso, tensor.Lookup("public-surface"))
}

func TestMemoryUnits(t *testing.T) {
	assert.EqualValues(t, 1024, tensor.KiB)
	assert.EqualValues(t, 1024*1024, tensor.MiB)
	assert.EqualValues(t, 1024*1024*1024, tensor.GiB)
}

func TestShapeAlias(t *testing.T) {
	s := tensor.NewShape([]int64{2, 3})
	assert.Equal(t, 2, s.Rank())
	assert.EqualValues(t, 6, s.ElemCount())
}
