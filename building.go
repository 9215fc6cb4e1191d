// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package inferno

import "github.com/dwarfmaster/inferno/internal/graph"

// building is the context threaded through a Co value's build closures: it
// owns the graph that the whole solve will run over and tracks the rank that
// a fresh variable should be stamped with.
//
// rank here is bookkeeping only -- a plain counter pushed by LetN before
// building its first child and popped before building its second, mirroring
// exactly the pool-stack depth the solver will later see when it walks the
// resulting rawco tree. The real pool stack (internal/pool.Stack), which also
// performs generalization, only comes alive once solving starts; build never
// touches it, since generalization needs unification results that do not
// exist yet.
type building[V TermVar[V]] struct {
	g    *graph.Graph
	rank int
}

// newBuilding starts the rank counter at -1, mirroring pool.Stack.Rank's
// value before any pool has been entered: the first LetN/Let0 node's enter
// brings it to 0, the rank of the outermost scope, exactly as the solve-time
// pool stack will see it once solving begins.
func newBuilding[V TermVar[V]]() *building[V] {
	return &building[V]{g: graph.New(), rank: -1}
}

// fresh allocates a new variable at the current build rank.
func (b *building[V]) fresh(s Structure) Var {
	return b.g.Fresh(b.rank, s)
}

// enter increments the build rank for the first child of a Let node.
func (b *building[V]) enter() { b.rank++ }

// leave decrements the build rank after the first child of a Let node has
// been built, restoring it before the second child is built.
func (b *building[V]) leave() { b.rank-- }
