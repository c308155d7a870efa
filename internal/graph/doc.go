// Package graph evaluates the computation DAG recorded on tensors.
//
// Each tensor carries its producing opcode and operand tensors, so the
// graph is implicit and acyclic by construction. Compute walks the DAG in
// post-order and dispatches every node through a per-opcode validator and
// evaluator pair. Validation failure is fatal: it signals a programming
// error, never user input.
package graph
