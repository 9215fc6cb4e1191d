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

// Package graph implements the destructive, path-compressed union-find graph which
// backs the solver: singleton classes of unification variables, each carrying a
// generalization rank (distinct from the union-find rank used to keep union/find
// amortized near-constant) and an optional user-supplied Structure.
//
// Descriptors live in parallel slices indexed by Var, rather than behind pointers, so
// that the whole graph for one solve is a handful of contiguous allocations with no
// aliasing hazards -- the "arena + integer index" model.
package graph

import "errors"

// Var is an opaque handle to a unification variable: an index into a Graph's arena.
type Var int32

// Structure is a user-supplied, shallow type-constructor shape whose children are
// other Vars. Children/Rebuild realize the functor's map; SameHead plus a positional
// zip of Children (performed by Unify) realize the functor's conjunction.
type Structure interface {
	// Children returns the child variables of this shape, in a stable order.
	Children() []Var
	// Rebuild returns a copy of the structure with its children replaced by cs, which
	// has the same length and order as Children.
	Rebuild(cs []Var) Structure
	// SameHead reports whether other has the same head constructor (tag and arity) as
	// this structure, without comparing children.
	SameHead(other Structure) bool
}

// CycleError is returned by Unify when linking two classes would create a cyclic type
// and the graph is configured with occurs check enabled. Var identifies the
// representative at which the cycle was discovered; callers decode it with the
// cyclic decoder, since it may not be representable as a finite type otherwise.
type CycleError struct{ Var Var }

func (e *CycleError) Error() string { return "cyclic type" }

// UnifyError is returned by Unify when two structures have incompatible head
// constructors (mismatched arity or tag). A and B are the representatives of the two
// classes as they stood at the point of failure.
type UnifyError struct{ A, B Var }

func (e *UnifyError) Error() string { return "failed to unify incompatible types" }

// Graph is an arena of unification variables joined by path-compressed,
// union-by-union-find-rank union-find, enriched with a per-class generalization rank.
type Graph struct {
	parent    []Var
	ufRank    []int32
	genRank   []int32
	structure []Structure
	generic   []bool

	// Tri-color DFS scratch, epoch-stamped so a check doesn't need to clear the whole
	// arena: a Var is "grey" (on the current DFS stack) iff greyMark[v] == epoch, and
	// "black" (fully explored, no cycle found through it) iff blackMark[v] == epoch.
	epoch     int32
	greyMark  []int32
	blackMark []int32
}

// New returns an empty Graph.
func New() *Graph { return &Graph{} }

// Fresh allocates a new singleton class at the given generalization rank, with
// optional initial structure (nil means the shape is not yet known).
func (g *Graph) Fresh(rank int, s Structure) Var {
	v := Var(len(g.parent))
	g.parent = append(g.parent, v)
	g.ufRank = append(g.ufRank, 0)
	g.genRank = append(g.genRank, int32(rank))
	g.structure = append(g.structure, s)
	g.generic = append(g.generic, false)
	g.greyMark = append(g.greyMark, 0)
	g.blackMark = append(g.blackMark, 0)
	return v
}

// Len returns the number of variables ever allocated in the graph (not the number of
// live classes).
func (g *Graph) Len() int { return len(g.parent) }

// Find returns the canonical representative of v's class, path-compressing along the
// way.
func (g *Graph) Find(v Var) Var {
	root := v
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for g.parent[v] != root {
		g.parent[v], v = root, g.parent[v]
	}
	return root
}

// Same reports whether a and b are already members of the same class.
func (g *Graph) Same(a, b Var) bool { return g.Find(a) == g.Find(b) }

// Rank returns the generalization rank of v's class.
func (g *Graph) Rank(v Var) int { return int(g.genRank[g.Find(v)]) }

// SetRank directly assigns the generalization rank of v's class. Used by the
// generalization engine's rank-adjustment pass to lower a variable's rank when it
// escapes the scope being generalized.
func (g *Graph) SetRank(v Var, rank int) { g.genRank[g.Find(v)] = int32(rank) }

// Structure returns the shape bound to v's class, or nil if the class has no shape
// yet.
func (g *Graph) Structure(v Var) Structure { return g.structure[g.Find(v)] }

// SetStructure directly assigns the shape bound to v's class.
func (g *Graph) SetStructure(v Var, s Structure) { g.structure[g.Find(v)] = s }

// SetGeneric marks v's class as having been turned into a scheme quantifier:
// from this point on, Unify must reject it until it is instantiated into a
// fresh copy.
func (g *Graph) SetGeneric(v Var) { g.generic[g.Find(v)] = true }

// IsGeneric reports whether v's class has been generalized.
func (g *Graph) IsGeneric(v Var) bool { return g.generic[g.Find(v)] }

// Unify merges the classes of a and b, recursively merging their structures. If
// either class has already been generalized (SetGeneric), ErrGenericUnification is
// returned instead -- a generalized variable must be instantiated into a fresh copy
// before it can take part in any further unification. If occursCheck is true,
// linking is preceded by a cycle check and CycleError is returned instead of
// creating a cyclic graph.
func (g *Graph) Unify(a, b Var, occursCheck bool) error {
	a, b = g.Find(a), g.Find(b)
	if a == b {
		return nil
	}

	if g.generic[a] || g.generic[b] {
		return ErrGenericUnification
	}

	if occursCheck {
		if err := g.checkOccurs(a, b); err != nil {
			return err
		}
	}

	// Both classes' generalization rank falls to the minimum of the two: this is the
	// rank-lowering step that keeps a variable alive as long as the
	// longer-lived (outer) of the two classes it now straddles.
	minRank := g.genRank[a]
	if g.genRank[b] < minRank {
		minRank = g.genRank[b]
	}

	sa, sb := g.structure[a], g.structure[b]
	var merged Structure
	switch {
	case sa == nil:
		merged = sb
	case sb == nil:
		merged = sa
	default:
		if !sa.SameHead(sb) {
			return &UnifyError{A: a, B: b}
		}
		ca, cb := sa.Children(), sb.Children()
		if len(ca) != len(cb) {
			return &UnifyError{A: a, B: b}
		}
		merged = sa
	}

	// Union-find by ufRank keeps Find amortized near-constant; which Var id survives
	// as representative is otherwise unconstrained (spec leaves the tie-break to the
	// implementer -- it does not affect the set of generalizable variables).
	survivor, absorbed := a, b
	if g.ufRank[survivor] < g.ufRank[absorbed] {
		survivor, absorbed = absorbed, survivor
	} else if g.ufRank[survivor] == g.ufRank[absorbed] {
		g.ufRank[survivor]++
	}
	g.parent[absorbed] = survivor
	g.genRank[survivor] = minRank
	g.structure[survivor] = merged

	if sa != nil && sb != nil {
		ca, cb := sa.Children(), sb.Children()
		for i := range ca {
			if err := g.Unify(ca[i], cb[i], occursCheck); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkOccurs reports whether unioning a and b would create a cycle: whether the
// representative that a and b would share, once linked, is reachable from its own
// (combined) structure through one or more edges.
func (g *Graph) checkOccurs(a, b Var) error {
	g.epoch++
	epoch := g.epoch

	var walk func(v Var) error
	walk = func(v Var) error {
		v = g.Find(v)
		if v == a || v == b {
			return &CycleError{Var: v}
		}
		if g.blackMark[v] == epoch {
			return nil
		}
		if g.greyMark[v] == epoch {
			return &CycleError{Var: v}
		}
		g.greyMark[v] = epoch
		if s := g.structure[v]; s != nil {
			for _, c := range s.Children() {
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		g.blackMark[v] = epoch
		return nil
	}

	for _, root := range [2]Var{a, b} {
		s := g.structure[root]
		if s == nil {
			continue
		}
		for _, c := range s.Children() {
			if err := walk(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// ErrGenericUnification is returned when a caller asks the graph to unify a variable
// that has already been generalized (turned into a scheme quantifier); generic
// variables must be instantiated first.
var ErrGenericUnification = errors.New("generic type-variable was not instantiated before unification")
