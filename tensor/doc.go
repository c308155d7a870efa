// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API of the Ember tensor runtime.
//
// The runtime is organized around isolates: independent tensor-allocation
// contexts, each owning one fixed-size arena that backs every tensor
// created from it. Tensors are rank-1..4 float32 arrays that double as
// vertices of a computation DAG; recording operations on tensors builds
// the graph, and package graph evaluates it.
//
// Example:
//
//	tensor.Init()
//	defer tensor.Shutdown()
//
//	iso := tensor.NewIsolate("main", tensor.CPU, 4*tensor.MiB)
//	defer iso.Close()
//
//	a := iso.NewTensor(4, 4).FillOne()
//	b := iso.NewTensor(4, 4).FillOne()
//	c := a.Add(b)
//	graph.Compute(c)
package tensor
