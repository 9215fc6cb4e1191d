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

// rawco is the constraint tree built by the combinator API and walked by the
// low-level solver. Node kinds mirror the eight forms the solver recognizes;
// every combinator in combinator.go builds one of these, never anything else.
type rawco[V TermVar[V]] interface {
	isRawco()
}

type trueC[V TermVar[V]] struct{}

func (trueC[V]) isRawco() {}

type conjC[V TermVar[V]] struct {
	a, b rawco[V]
}

func (conjC[V]) isRawco() {}

type eqC[V TermVar[V]] struct {
	a, b Var
}

func (eqC[V]) isRawco() {}

type existC[V TermVar[V]] struct {
	v Var
	c rawco[V]
}

func (existC[V]) isRawco() {}

// instanceC instantiates the scheme bound to x, unifies the result with v,
// and records the fresh witness variables (in scheme-quantifier order) in
// hook.
type instanceC[V TermVar[V]] struct {
	x    V
	v    Var
	hook *Hook[[]Var]
}

func (instanceC[V]) isRawco() {}

// defC extends the environment with x bound to the trivial (non-generalized)
// scheme for v, solves c, then the extension falls out of scope when defC's
// solve call returns.
type defC[V TermVar[V]] struct {
	x V
	v Var
	c rawco[V]
}

func (defC[V]) isRawco() {}

// letBinding is one (x, v, schemeHook) triple of a Let node: v is the fresh
// variable standing for x's body while c1 is solved; schemeHook receives x's
// generalized scheme once the pool is exited.
type letBinding[V TermVar[V]] struct {
	x          V
	v          Var
	schemeHook *Hook[scheme]
}

// letC enters a new rank, solves c1 with bindings registered fresh at that
// rank, generalizes at exit (writing schemeHook per binding and genHook with
// the union of generalizable variables), extends the environment with the
// resulting schemes, solves c2, then the extension and the rank both fall out
// of scope.
type letC[V TermVar[V]] struct {
	bindings []letBinding[V]
	c1, c2   rawco[V]
	genHook  *Hook[[]Var]
}

func (letC[V]) isRawco() {}

// rangeC attaches r as the ambient source range while solving c; errors
// raised anywhere within c, unless a nested rangeC narrows it further, are
// reported against r.
type rangeC[V TermVar[V]] struct {
	r Range
	c rawco[V]
}

func (rangeC[V]) isRawco() {}
