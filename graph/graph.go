// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph evaluates and visualizes computation DAGs recorded on
// tensors.
//
// Example:
//
//	a := iso.NewTensor(4, 4).FillOne()
//	b := iso.NewTensor(4, 4).FillOne()
//	c := a.Add(b)
//	g := c.Mul(c)
//	graph.Compute(g)
package graph

import (
	"github.com/ember-ml/ember/internal/graph"
	"github.com/ember-ml/ember/internal/tensor"
)

// Compute evaluates the DAG rooted at root with the single-threaded
// compute context. Operands are visited depth-first, left to right, and
// every node's kernel runs after its operand subgraphs complete. Shared
// subexpressions evaluate once per call.
//
// Validation failure panics: it signals a programming error in the graph
// construction, never user input.
func Compute(root *tensor.Tensor) {
	graph.Compute(root)
}

// DOT renders the DAG rooted at root as graphviz dot source.
func DOT(root *tensor.Tensor) string {
	return graph.DOT(root)
}

// WriteDOT writes the dot source for root to path.
func WriteDOT(path string, root *tensor.Tensor) error {
	return graph.WriteDOT(path, root)
}
