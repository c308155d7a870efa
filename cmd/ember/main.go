// Copyright 2025 Ember ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Command ember is a small demo driver for the Ember tensor runtime: it
// initializes the runtime, records a computation DAG, evaluates it, and
// optionally dumps the graph as graphviz dot.
package main

import (
	"flag"
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"github.com/ember-ml/ember/graph"
	"github.com/ember-ml/ember/nn"
	"github.com/ember-ml/ember/tensor"
)

func main() {
	klog.InitFlags(nil)
	pool := flag.Int64("pool", 4*tensor.MiB, "arena capacity in bytes")
	dot := flag.String("dot", "", "write the demo graph as graphviz dot to this file")
	seed := flag.Int64("seed", 1, "PRNG seed for weight initialization")
	flag.Parse()
	defer klog.Flush()

	if !tensor.Init() {
		klog.Fatal("runtime initialization failed")
	}
	defer tensor.Shutdown()

	iso := tensor.NewIsolate("demo", tensor.AutoSelect, *pool)
	defer iso.Close()
	iso.Seed(*seed)

	// The classic expression demo: g = (c*c - c) * c with c = a + b.
	a := iso.NewTensor(4, 4).FillOne().SetName("a")
	b := iso.NewTensor(4, 4).FillOne().SetName("b")
	c := a.Add(b).SetName("c")
	e := c.Mul(c).SetName("e")
	f := e.Sub(c).SetName("f")
	g := f.Mul(c).SetName("g")

	graph.Compute(g)
	fmt.Println(g.DataString())

	if *dot != "" {
		if err := graph.WriteDOT(*dot, g); err != nil {
			klog.Errorf("writing dot file: %v", err)
			os.Exit(1)
		}
		klog.Infof("wrote computation graph to %s", *dot)
	}

	// A two-layer sigmoid MLP forward pass on the same arena.
	net := nn.NewNetwork(iso, []int64{4, 8, 2})
	net.Input().FillData([]float32{0.5, -0.25, 1.0, -1.0})
	out := net.Forward()
	fmt.Println(out.DataString())

	fmt.Println(iso.Pool().String())
}
