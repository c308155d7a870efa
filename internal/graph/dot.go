package graph

import (
	"fmt"
	"os"
	"strings"

	"github.com/ember-ml/ember/internal/tensor"
)

// DOT renders the DAG rooted at root as graphviz dot source. Leaves are
// green boxes, derived tensors blue boxes, and each operation a violet
// circle between its inputs and output.
func DOT(root *tensor.Tensor) string {
	var sb strings.Builder
	sb.WriteString("digraph ComputationGraph {\n")
	sb.WriteString("rankdir=LR;\n")

	visited := make(map[*tensor.Tensor]struct{})
	var visit func(t *tensor.Tensor)
	visit = func(t *tensor.Tensor) {
		if _, done := visited[t]; done {
			return
		}
		visited[t] = struct{}{}
		for _, operand := range t.Operands() {
			visit(operand)
		}

		id := fmt.Sprintf("t_%p", t)
		color := "lightskyblue"
		if t.Op() == tensor.OpNop {
			color = "springgreen2"
		}
		label := t.Name()
		if label == "" {
			label = t.Shape().String()
		}
		fmt.Fprintf(&sb, "%s [label=%q, shape=box, style=\"rounded, filled\", color=%s, fillcolor=%s];\n",
			id, label, color, color)

		if t.Op() != tensor.OpNop {
			opID := fmt.Sprintf("op_%p", t)
			fmt.Fprintf(&sb, "%s [label=%q, shape=circle, style=filled, color=orchid1, fillcolor=orchid1];\n",
				opID, t.Op().String())
			for _, operand := range t.Operands() {
				fmt.Fprintf(&sb, "t_%p -> %s [arrowhead=vee];\n", operand, opID)
			}
			fmt.Fprintf(&sb, "%s -> %s [arrowhead=vee];\n", opID, id)
		}
	}
	visit(root)

	sb.WriteString("}\n")
	return sb.String()
}

// WriteDOT writes the dot source for root to path.
func WriteDOT(path string, root *tensor.Tensor) error {
	return os.WriteFile(path, []byte(DOT(root)), 0o644)
}
