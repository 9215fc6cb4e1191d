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

package inferno_test

import (
	"fmt"
	"strings"

	"github.com/dwarfmaster/inferno"
)

// testVar is a minimal TermVar: a plain string with lexicographic ordering,
// standing in for whatever identifier type a front end would supply.
type testVar string

func (v testVar) Compare(other testVar) int { return strings.Compare(string(v), string(other)) }

// shape is the toy structure functor: arrow and pair are 2-ary, boolTy and
// intTy are nullary constants.
type shape struct {
	tag      string
	children []inferno.Var
}

func (s shape) Children() []inferno.Var { return s.children }

func (s shape) Rebuild(cs []inferno.Var) inferno.Structure {
	return shape{tag: s.tag, children: cs}
}

func (s shape) SameHead(other inferno.Structure) bool {
	o, ok := other.(shape)
	return ok && o.tag == s.tag && len(o.children) == len(s.children)
}

func arrowS(a, b inferno.Var) inferno.Structure { return shape{tag: "arrow", children: []inferno.Var{a, b}} }
func pairS(a, b inferno.Var) inferno.Structure  { return shape{tag: "pair", children: []inferno.Var{a, b}} }
func boolS() inferno.Structure                  { return shape{tag: "bool"} }
func intS() inferno.Structure                   { return shape{tag: "int"} }

// tyvar is the toy decoded type-variable identity.
type tyvar int

// ty is the toy decoded type: a var reference, a mu-bound recursive type, or
// a structure application.
type ty struct {
	kind     string
	v        tyvar
	children []ty
}

func (t ty) String() string {
	switch t.kind {
	case "var":
		return fmt.Sprintf("t%d", t.v)
	case "mu":
		return fmt.Sprintf("(mu t%d. %s)", t.v, t.children[0])
	case "bool", "int":
		return t.kind
	case "arrow":
		return fmt.Sprintf("(%s -> %s)", t.children[0], t.children[1])
	case "pair":
		return fmt.Sprintf("(%s * %s)", t.children[0], t.children[1])
	default:
		return "?"
	}
}

type testOutput struct{}

func (testOutput) Variable(tv tyvar) ty { return ty{kind: "var", v: tv} }

func (testOutput) Structure(s inferno.Structure, children []ty) ty {
	sh := s.(shape)
	return ty{kind: sh.tag, children: children}
}

func (testOutput) Mu(tv tyvar, body ty) ty { return ty{kind: "mu", v: tv, children: []ty{body}} }

func (testOutput) TyVar(id int) tyvar { return tyvar(id) }

// The helpers below specialize the combinator API's generic functions to
// this package's (testVar, ty, tyvar) fixture, so scenario tests don't need
// to spell out every type argument at every call.

func exist[T any](s inferno.Structure, f func(inferno.Var) inferno.Co[testVar, ty, tyvar, T]) inferno.Co[testVar, ty, tyvar, inferno.Pair[ty, T]] {
	return inferno.Exist[testVar, ty, tyvar, T](s, f)
}

func existDiscard[T any](s inferno.Structure, f func(inferno.Var) inferno.Co[testVar, ty, tyvar, T]) inferno.Co[testVar, ty, tyvar, T] {
	return inferno.ExistDiscard[testVar, ty, tyvar, T](s, f)
}

func unify1(v inferno.Var, s inferno.Structure) inferno.Co[testVar, ty, tyvar, struct{}] {
	return inferno.Unify1[testVar, ty, tyvar](v, s)
}

func instanceDiscard(x testVar, v inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
	return inferno.InstanceDiscard[testVar, ty, tyvar](x, v)
}

func defC[T any](x testVar, v inferno.Var, c inferno.Co[testVar, ty, tyvar, T]) inferno.Co[testVar, ty, tyvar, T] {
	return inferno.Def[testVar, ty, tyvar, T](x, v, c)
}

func and[A, B any](c1 inferno.Co[testVar, ty, tyvar, A], c2 inferno.Co[testVar, ty, tyvar, B]) inferno.Co[testVar, ty, tyvar, inferno.Pair[A, B]] {
	return inferno.And[testVar, ty, tyvar, A, B](c1, c2)
}

func and2(c1, c2 inferno.Co[testVar, ty, tyvar, struct{}]) inferno.Co[testVar, ty, tyvar, struct{}] {
	return inferno.MapCo[testVar, ty, tyvar, inferno.Pair[struct{}, struct{}], struct{}](
		func(inferno.Pair[struct{}, struct{}]) struct{} { return struct{}{} },
		and[struct{}, struct{}](c1, c2),
	)
}

func pure[T any](a T) inferno.Co[testVar, ty, tyvar, T] {
	return inferno.Pure[testVar, ty, tyvar, T](a)
}

func mapco[A, B any](f func(A) B, c inferno.Co[testVar, ty, tyvar, A]) inferno.Co[testVar, ty, tyvar, B] {
	return inferno.MapCo[testVar, ty, tyvar, A, B](f, c)
}

func letN[T, U any](xs []testVar, f func([]inferno.Var) inferno.Co[testVar, ty, tyvar, T], c2 inferno.Co[testVar, ty, tyvar, U]) inferno.Co[testVar, ty, tyvar, inferno.LetResult[ty, tyvar, T, U]] {
	return inferno.LetN[testVar, ty, tyvar, T, U](xs, f, c2)
}

func let1[T, U any](x testVar, f func(inferno.Var) inferno.Co[testVar, ty, tyvar, T], c2 inferno.Co[testVar, ty, tyvar, U]) inferno.Co[testVar, ty, tyvar, inferno.LetResult1[ty, tyvar, T, U]] {
	return inferno.Let1[testVar, ty, tyvar, T, U](x, f, c2)
}

func let0[T any](c inferno.Co[testVar, ty, tyvar, T]) inferno.Co[testVar, ty, tyvar, T] {
	return inferno.Let0[testVar, ty, tyvar, T](c)
}

func correlate[T any](r inferno.Range, c inferno.Co[testVar, ty, tyvar, T]) inferno.Co[testVar, ty, tyvar, T] {
	return inferno.Correlate[testVar, ty, tyvar, T](r, c)
}

func solve[T any](rectypes bool, c inferno.Co[testVar, ty, tyvar, T]) (T, error) {
	return inferno.Solve[testVar, ty, tyvar, T](rectypes, c, testOutput{})
}

// typeIdent requires the identifier x's type to unify with target, via
// instantiation if x was let-bound or plain aliasing if x was lambda/def
// bound -- the solver treats both uniformly through Instance.
func typeIdent(x testVar, target inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
	return instanceDiscard(x, target)
}

// typeLambda requires target to unify with arrow(p, r), where p is the fresh
// parameter variable bound to param while typing body, and r is body's
// result variable.
func typeLambda(param testVar, body func(resultVar inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}], target inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
	return existDiscard[struct{}](nil, func(p inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
		return existDiscard[struct{}](nil, func(r inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
			return and2(defC[struct{}](param, p, body(r)), unify1(target, arrowS(p, r)))
		})
	})
}

// typeApp requires target to unify with the result of applying fn to arg:
// fnTy ~ arrow(argTy, target), where fn and arg independently constrain
// fnTy and argTy.
func typeApp(fn, arg func(inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}], target inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
	return existDiscard[struct{}](nil, func(argTy inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
		return existDiscard[struct{}](nil, func(fnTy inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
			return and2(and2(fn(fnTy), arg(argTy)), unify1(fnTy, arrowS(argTy, target)))
		})
	})
}
