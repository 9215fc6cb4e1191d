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

// decoder converts solved graph variables into user-facing types, after a
// solve has finished. It is the environment a Co value's run continuation
// receives.
type decoder[Ty, TyVar any] struct {
	g        *graph.Graph
	out      Output[Ty, TyVar]
	rectypes bool

	acyclicMemo map[Var]Ty
	cyclicMemo  map[Var]Ty
	tyvarMemo   map[Var]TyVar
}

func newDecoder[Ty, TyVar any](g *graph.Graph, out Output[Ty, TyVar], rectypes bool) *decoder[Ty, TyVar] {
	return &decoder[Ty, TyVar]{
		g:           g,
		out:         out,
		rectypes:    rectypes,
		acyclicMemo: make(map[Var]Ty),
		cyclicMemo:  make(map[Var]Ty),
		tyvarMemo:   make(map[Var]TyVar),
	}
}

// tyvar decodes a variable's identity into a tyvar, memoized so the same
// variable always decodes to the same tyvar.
func (d *decoder[Ty, TyVar]) tyvar(v Var) TyVar {
	v = d.g.Find(v)
	if tv, ok := d.tyvarMemo[v]; ok {
		return tv
	}
	tv := d.out.TyVar(int(v))
	d.tyvarMemo[v] = tv
	return tv
}

// decode picks the acyclic or cyclic decoder according to the solve's mode,
// matching the contract that user-facing types under rectypes = true may
// contain mu-bindings.
func (d *decoder[Ty, TyVar]) decode(v Var) Ty {
	if d.rectypes {
		return d.decodeCyclic(v)
	}
	return d.decodeAcyclic(v)
}

// decodeAcyclic assumes the occurs check has ruled out cycles; it memoizes by
// variable so shared subgraphs decode to the same Ty value.
func (d *decoder[Ty, TyVar]) decodeAcyclic(v Var) Ty {
	v = d.g.Find(v)
	if ty, ok := d.acyclicMemo[v]; ok {
		return ty
	}
	s := d.g.Structure(v)
	if s == nil {
		ty := d.out.Variable(d.tyvar(v))
		d.acyclicMemo[v] = ty
		return ty
	}
	children := s.Children()
	decoded := make([]Ty, len(children))
	for i, c := range children {
		decoded[i] = d.decodeAcyclic(c)
	}
	ty := d.out.Structure(s, decoded)
	d.acyclicMemo[v] = ty
	return ty
}

// decodeCyclic detects back-edges with an explicit on-stack set; a node
// revisited while still being decoded is closed with a freshly minted
// mu-binding, per the cyclic-type contract used for error payloads and for
// user decoding when rectypes = true.
func (d *decoder[Ty, TyVar]) decodeCyclic(v Var) Ty {
	onStack := make(map[Var]bool)
	needsMu := make(map[Var]bool)
	var walk func(v Var) Ty
	walk = func(v Var) Ty {
		v = d.g.Find(v)
		if ty, ok := d.cyclicMemo[v]; ok {
			return ty
		}
		if onStack[v] {
			needsMu[v] = true
			return d.out.Variable(d.tyvar(v))
		}
		s := d.g.Structure(v)
		if s == nil {
			ty := d.out.Variable(d.tyvar(v))
			d.cyclicMemo[v] = ty
			return ty
		}
		onStack[v] = true
		children := s.Children()
		decoded := make([]Ty, len(children))
		for i, c := range children {
			decoded[i] = walk(c)
		}
		onStack[v] = false
		ty := d.out.Structure(s, decoded)
		if needsMu[v] {
			ty = d.out.Mu(d.tyvar(v), ty)
		}
		d.cyclicMemo[v] = ty
		return ty
	}
	return walk(v)
}

// decodeScheme renders an internal scheme as its user-facing form.
func (d *decoder[Ty, TyVar]) decodeScheme(s scheme) Scheme[Ty, TyVar] {
	qs := make([]TyVar, len(s.quantifiers))
	for i, q := range s.quantifiers {
		qs[i] = d.tyvar(q)
	}
	return Scheme[Ty, TyVar]{Quantifiers: qs, Body: d.decode(s.root)}
}
