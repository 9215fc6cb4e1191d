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

// Var identifies a unification variable within a single solve. It is an
// opaque arena index, numbered from zero in allocation order.
type Var = graph.Var

// Structure is a user-supplied, shallow type-constructor shape whose children
// are other unification variables: arrow(a,a), tuple[a...], and so on.
//
// Children and Rebuild together realize the structure functor's map;
// SameHead, combined with a positional zip of Children performed by the
// unifier, realizes its conjunction. Go has no higher-kinded types, so the
// same interface cannot also carry the "children are decoded output values"
// role; that role belongs to Output instead.
type Structure = graph.Structure

// TermVar is the abstract key of the typing environment: any user type with a
// total ordering. F-bounded so the environment never needs reflection to
// compare keys.
type TermVar[V any] interface {
	Compare(other V) int
}

// Output lets the solver construct decoded types and schemes without knowing
// their concrete representation. The core only ever calls these four methods.
type Output[Ty, TyVar any] interface {
	// Variable decodes an unresolved or quantified variable.
	Variable(tv TyVar) Ty
	// Structure decodes a resolved shape, given its already-decoded children
	// in the order reported by Structure.Children.
	Structure(s Structure, children []Ty) Ty
	// Mu closes a cycle discovered while decoding in cyclic mode.
	Mu(tv TyVar, body Ty) Ty
	// TyVar injects a descriptor's arena id into a tyvar, so that repeated
	// decodes of the same variable produce the same tyvar.
	TyVar(id int) TyVar
}

// Position is an opaque source position, threaded through but never
// interpreted by the solver.
type Position struct {
	Line, Column int
}

// Range is a pair of source positions bracketing the constraint that raised
// an error. It is attached by Correlate and surfaces unmodified on
// UnboundError, UnifyError, and CycleError.
type Range struct {
	Start, End Position
}

// Scheme is a decoded type scheme: the quantified type variables of a
// polymorphic binding, plus its body type.
type Scheme[Ty, TyVar any] struct {
	Quantifiers []TyVar
	Body        Ty
}
