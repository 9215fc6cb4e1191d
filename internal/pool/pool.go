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

// Package pool implements the Remy-style generalization engine: a stack of pools
// indexed by rank, where pool r holds exactly the live representatives introduced at
// rank r (or later lowered into it). Leaving the top pool identifies which of its
// variables are still eligible to be quantified at that rank and which have escaped
// to an enclosing scope.
package pool

import "github.com/dwarfmaster/inferno/internal/graph"

// Scheme is the internal representation of a generalized binding: the set of
// variables quantified at the binding's level, and the root variable of its body.
type Scheme struct {
	Quantifiers []graph.Var
	Root        graph.Var
}

// Stack is a pool stack; rank 0 is the outermost scope, and the current rank is the
// depth of currently-open Let nesting (len(Stack.pools) - 1 once non-empty).
type Stack struct {
	pools [][]graph.Var
	g     *graph.Graph
}

// New returns a Stack with no open pools. Callers must Enter a pool before any
// variable may be allocated (mirroring the solver's requirement that the topmost
// constraint be a Let, so a pool always exists before the first Fresh).
func New(g *graph.Graph) *Stack { return &Stack{g: g} }

// Rank returns the current rank: the index of the topmost open pool, or -1 if no pool
// is open.
func (s *Stack) Rank() int { return len(s.pools) - 1 }

// Enter pushes a new, empty pool and returns its rank.
func (s *Stack) Enter() int {
	s.pools = append(s.pools, nil)
	return s.Rank()
}

// Register appends v to the current (topmost) pool. Fresh allocations and rank
// lowering both register a variable into whichever pool now matches its rank.
func (s *Stack) Register(v graph.Var) {
	top := s.Rank()
	s.pools[top] = append(s.pools[top], v)
}

// RegisterAt appends v to the pool at the given rank, used when a variable's rank is
// lowered to an enclosing (not necessarily topmost) scope.
func (s *Stack) RegisterAt(rank int, v graph.Var) {
	s.pools[rank] = append(s.pools[rank], v)
}

// Exit performs the generalization algorithm for the top pool and pops it, binding
// each of roots to a scheme. The returned generalizable slice is the union of all
// returned schemes' Quantifiers, in the order variables were found reachable.
func (s *Stack) Exit(roots []graph.Var) (schemes []Scheme, generalizable []graph.Var) {
	top := s.Rank()
	pool := s.pools[top]
	enclosing := top - 1

	// Step 1: adjust ranks. For every variable in the top pool, recursively visit its
	// structure (memoized) and set rank(v) = min(rank(v), max over children of
	// rank(child)); variables whose rank falls below `top` escape to the enclosing
	// pool.
	visited := make(map[graph.Var]bool, len(pool))
	var adjust func(v graph.Var) int
	adjust = func(v graph.Var) int {
		v = s.g.Find(v)
		if visited[v] {
			return s.g.Rank(v)
		}
		visited[v] = true
		st := s.g.Structure(v)
		if st != nil {
			maxChild := -1
			for _, c := range st.Children() {
				if r := adjust(c); r > maxChild {
					maxChild = r
				}
			}
			if maxChild >= 0 && maxChild < s.g.Rank(v) {
				s.g.SetRank(v, maxChild)
			}
		}
		r := s.g.Rank(v)
		if r < top && enclosing >= 0 {
			s.RegisterAt(enclosing, v)
		}
		return r
	}
	for _, v := range pool {
		adjust(v)
	}

	// Step 2 & 3: partition the (adjusted) pool into candidates (still at `top`) and
	// generalize each candidate. Only a structureless leaf becomes a quantifier --
	// a variable already bound to a Structure is a skeleton node that collect must
	// still walk through below, not a type to quantify over.
	generalized := make(map[graph.Var]bool)
	for _, v := range pool {
		v = s.g.Find(v)
		if s.g.Rank(v) != top || generalized[v] || s.g.Structure(v) != nil {
			continue
		}
		generalized[v] = true
		s.g.SetGeneric(v)
	}

	// Step 4 & 5: build one scheme per root, and collect the union of all reachable
	// generalized variables as the Let node's reported generalizable set.
	seen := make(map[graph.Var]bool, len(pool))
	schemes = make([]Scheme, len(roots))
	for i, root := range roots {
		var quant []graph.Var
		var collect func(v graph.Var)
		inThisRoot := make(map[graph.Var]bool)
		collect = func(v graph.Var) {
			v = s.g.Find(v)
			if inThisRoot[v] {
				return
			}
			inThisRoot[v] = true
			if generalized[v] {
				quant = append(quant, v)
				if !seen[v] {
					seen[v] = true
					generalizable = append(generalizable, v)
				}
			}
			if st := s.g.Structure(v); st != nil {
				for _, c := range st.Children() {
					collect(c)
				}
			}
		}
		collect(root)
		schemes[i] = Scheme{Quantifiers: quant, Root: root}
	}

	s.pools = s.pools[:top]
	return schemes, generalizable
}
