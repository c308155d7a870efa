// Package tensor implements the Ember tensor runtime core: the arena
// allocator, the isolate (tensor-allocation context), the fixed-rank
// shape/stride algebra, the tensor value itself, and the opcode table.
//
// Tensors double as vertices of an implicit computation DAG: every tensor
// records the opcode that produces it (OpNop for leaves) and up to two
// operand tensors. Graph validation and evaluation live in internal/graph;
// the kernels live in internal/blas.
//
// All tensor storage comes from the owning isolate's arena and is released
// in one shot when the isolate is closed. There is no per-tensor free.
package tensor
