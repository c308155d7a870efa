// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package blas exposes the Ember CPU kernels for eager use.
//
// The per-operation functions take an explicit result tensor and run the
// same validator and kernel the graph evaluator dispatches to, without
// recording anything in a DAG. Validation failure panics: it signals a
// programming error, never user input.
//
// Every function takes a ComputeCtx. A driver may invoke the same kernel
// concurrently with distinct thread indices out of NumThreads; each call
// writes a disjoint row range of the result. Parallel does exactly that.
package blas
