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

import (
	"github.com/dwarfmaster/inferno/internal/graph"
	"github.com/dwarfmaster/inferno/internal/pool"
)

// internalUnboundError and its siblings below carry undecoded Vars; Solve
// decodes them (always with the cyclic decoder, per the error-payload
// contract) into the public UnboundError/UnifyError/CycleError before
// returning them to the caller.
type internalUnboundError[V TermVar[V]] struct {
	x V
	r Range
}

func (e *internalUnboundError[V]) Error() string { return "unbound identifier" }

type internalUnifyError struct {
	a, b Var
	r    Range
}

func (e *internalUnifyError) Error() string { return "failed to unify incompatible types" }

type internalCycleError struct {
	v Var
	r Range
}

func (e *internalCycleError) Error() string { return "cyclic type" }

// solver walks an already-built rawco tree, performing unification and
// generalization over the graph whose constraint variables were allocated
// while the tree was built (building.go); instantiate allocates further
// variables as it copies schemes.
type solver[V TermVar[V]] struct {
	g        *graph.Graph
	pools    *pool.Stack
	rectypes bool
}

func newSolver[V TermVar[V]](g *graph.Graph, rectypes bool) *solver[V] {
	return &solver[V]{g: g, pools: pool.New(g), rectypes: rectypes}
}

func (s *solver[V]) unify(a, b Var, r Range) error {
	if err := s.g.Unify(a, b, !s.rectypes); err != nil {
		switch e := err.(type) {
		case *graph.UnifyError:
			return &internalUnifyError{a: e.A, b: e.B, r: r}
		case *graph.CycleError:
			return &internalCycleError{v: e.Var, r: r}
		default:
			return err
		}
	}
	return nil
}

func (s *solver[V]) solve(c rawco[V], e env[V], r Range) error {
	switch c := c.(type) {
	case trueC[V]:
		return nil

	case conjC[V]:
		if err := s.solve(c.a, e, r); err != nil {
			return err
		}
		return s.solve(c.b, e, r)

	case eqC[V]:
		return s.unify(c.a, c.b, r)

	case existC[V]:
		s.pools.Register(c.v)
		return s.solve(c.c, e, r)

	case instanceC[V]:
		sc, ok := e.lookup(c.x)
		if !ok {
			return &internalUnboundError[V]{x: c.x, r: r}
		}
		root, witnesses := s.instantiate(sc)
		if err := s.unify(root, c.v, r); err != nil {
			return err
		}
		c.hook.set(witnesses)
		return nil

	case defC[V]:
		return s.solve(c.c, e.extend(c.x, mono(c.v)), r)

	case letC[V]:
		s.pools.Enter()
		for _, b := range c.bindings {
			s.pools.Register(b.v)
		}
		if err := s.solve(c.c1, e, r); err != nil {
			return err
		}
		roots := make([]Var, len(c.bindings))
		for i, b := range c.bindings {
			roots[i] = b.v
		}
		schemes, generalizable := s.pools.Exit(roots)
		e2 := e
		for i, b := range c.bindings {
			sc := schemeFromPool(schemes[i])
			b.schemeHook.set(sc)
			e2 = e2.extend(b.x, sc)
		}
		c.genHook.set(generalizable)
		return s.solve(c.c2, e2, r)

	case rangeC[V]:
		return s.solve(c.c, e, c.r)

	default:
		panic("inferno: malformed constraint tree")
	}
}

// instantiate copies the subgraph reachable from sc's root, substituting a
// fresh variable (at the current rank) for every quantifier, and sharing
// every other node. It returns the copy's root and the fresh substitutes in
// quantifier order, per spec's Instance witness contract.
func (s *solver[V]) instantiate(sc scheme) (root Var, witnesses []Var) {
	if len(sc.quantifiers) == 0 {
		return sc.root, nil
	}

	subst := make(map[Var]Var, len(sc.quantifiers))
	witnesses = make([]Var, len(sc.quantifiers))
	for i, q := range sc.quantifiers {
		fresh := s.g.Fresh(s.pools.Rank(), nil)
		s.pools.Register(fresh)
		subst[s.g.Find(q)] = fresh
		witnesses[i] = fresh
	}

	copied := make(map[Var]Var)
	var walk func(v Var) Var
	walk = func(v Var) Var {
		v = s.g.Find(v)
		if fresh, ok := subst[v]; ok {
			return fresh
		}
		if c, ok := copied[v]; ok {
			return c
		}
		st := s.g.Structure(v)
		if st == nil {
			// Shared, non-quantified, structureless variable: alias it
			// directly rather than copying, per spec's "keeping non-quantified
			// nodes shared" contract.
			return v
		}
		children := st.Children()
		needsCopy := false
		newChildren := make([]Var, len(children))
		for i, c := range children {
			newChildren[i] = walk(c)
			if newChildren[i] != s.g.Find(c) {
				needsCopy = true
			}
		}
		if !needsCopy {
			copied[v] = v
			return v
		}
		nv := s.g.Fresh(s.pools.Rank(), st.Rebuild(newChildren))
		s.pools.Register(nv)
		copied[v] = nv
		return nv
	}

	root = walk(sc.root)
	return root, witnesses
}
