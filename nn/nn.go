// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn composes the runtime primitives into a thin neural-network
// layer: a sigmoid multilayer perceptron whose forward pass is a
// computation DAG built once and evaluated per call.
package nn

import (
	"fmt"

	"github.com/ember-ml/ember/blas"
	"github.com/ember-ml/ember/graph"
	"github.com/ember-ml/ember/internal/tensor"
)

// Network is a fully connected sigmoid MLP. Layer i maps arch[i] inputs
// to arch[i+1] outputs as sigmoid(a·W + b). All parameters and
// activations live in the owning isolate's arena.
type Network struct {
	arch    []int64
	input   *tensor.Tensor
	weights []*tensor.Tensor
	biases  []*tensor.Tensor
	output  *tensor.Tensor
}

// NewNetwork builds the forward DAG for the given architecture. arch
// needs at least an input and an output width. Weights are initialized
// uniform-random in [-1, 1) from the isolate's seedable PRNG; biases
// start at zero.
func NewNetwork(iso *tensor.Isolate, arch []int64) *Network {
	if len(arch) < 2 {
		panic(fmt.Sprintf("nn: architecture needs at least 2 layers, got %d", len(arch)))
	}
	n := &Network{arch: arch}
	n.input = iso.NewTensor(arch[0]).SetName("input")
	a := n.input
	for i := 1; i < len(arch); i++ {
		w := iso.NewTensor(arch[i-1], arch[i]).
			FillRandom(-1.0, 1.0).
			FormatName("weight %d", i)
		b := iso.NewTensor(arch[i]).
			FillZero().
			FormatName("bias %d", i)
		n.weights = append(n.weights, w)
		n.biases = append(n.biases, b)
		a = a.MatMul(w).Add(b).Sigmoid().FormatName("layer %d", i)
	}
	n.output = a
	return n
}

// Input returns the input tensor; write features into it before calling
// Forward.
func (n *Network) Input() *tensor.Tensor { return n.input }

// Output returns the output tensor of the last layer.
func (n *Network) Output() *tensor.Tensor { return n.output }

// Weights returns the per-layer weight tensors.
func (n *Network) Weights() []*tensor.Tensor { return n.weights }

// Biases returns the per-layer bias tensors.
func (n *Network) Biases() []*tensor.Tensor { return n.biases }

// Forward evaluates the whole DAG and returns the output tensor.
func (n *Network) Forward() *tensor.Tensor {
	graph.Compute(n.output)
	return n.output
}

// Softmax computes the fully normalized softmax of x into a fresh
// tensor: the exponential kernel produces the numerator and each row is
// divided by its sum here.
func Softmax(x *tensor.Tensor) *tensor.Tensor {
	r := x.IsomorphicClone()
	blas.Softmax(blas.SingleThreaded(), r, x)
	cols := r.ColCount()
	data := r.Data()
	for row := int64(0); row < r.RowCount(); row++ {
		seg := data[row*cols : (row+1)*cols]
		sum := float32(0)
		for _, v := range seg {
			sum += v
		}
		for i := range seg {
			seg[i] /= sum
		}
	}
	return r
}
