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

// Co is the applicative combinator value: a constraint together with the
// decoding continuation that consumes its solved witnesses. There is
// intentionally no bind -- the constraint's shape must be fully known before
// solving starts, so a continuation can never see a solved value while the
// tree is still being built.
//
// build is only ever invoked once, from within Solve, and always completes
// before run is invoked; combinators below rely on that ordering to let run
// closures read plain local variables that build closures assign.
type Co[V TermVar[V], Ty, TyVar, T any] struct {
	build func(*building[V]) rawco[V]
	run   func(*decoder[Ty, TyVar]) T
}

// Pair is the witness of And: the paired decode of both sides.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Pure builds True and produces a, ignoring the graph entirely.
func Pure[V TermVar[V], Ty, TyVar, T any](a T) Co[V, Ty, TyVar, T] {
	return Co[V, Ty, TyVar, T]{
		build: func(b *building[V]) rawco[V] { return trueC[V]{} },
		run:   func(d *decoder[Ty, TyVar]) T { return a },
	}
}

// And requires both c1 and c2 to hold, pairing their witnesses.
func And[V TermVar[V], Ty, TyVar, A, B any](c1 Co[V, Ty, TyVar, A], c2 Co[V, Ty, TyVar, B]) Co[V, Ty, TyVar, Pair[A, B]] {
	return Co[V, Ty, TyVar, Pair[A, B]]{
		build: func(b *building[V]) rawco[V] {
			return conjC[V]{a: c1.build(b), b: c2.build(b)}
		},
		run: func(d *decoder[Ty, TyVar]) Pair[A, B] {
			return Pair[A, B]{First: c1.run(d), Second: c2.run(d)}
		},
	}
}

// MapCo transforms a witness after decoding; the constraint itself is
// unchanged, so map id = id and map (f . g) = map f . map g hold by
// construction.
func MapCo[V TermVar[V], Ty, TyVar, A, B any](f func(A) B, c Co[V, Ty, TyVar, A]) Co[V, Ty, TyVar, B] {
	return Co[V, Ty, TyVar, B]{
		build: c.build,
		run:   func(d *decoder[Ty, TyVar]) B { return f(c.run(d)) },
	}
}

// Exist introduces a fresh variable, with optional initial structure s (nil
// for a bare existential), at the current rank, and hands it to f to build
// the rest of the constraint. The witness pairs the fresh variable's decoded
// type with f's own witness.
func Exist[V TermVar[V], Ty, TyVar, T any](s Structure, f func(Var) Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, Pair[Ty, T]] {
	var v Var
	var inner Co[V, Ty, TyVar, T]
	return Co[V, Ty, TyVar, Pair[Ty, T]]{
		build: func(b *building[V]) rawco[V] {
			v = b.fresh(s)
			inner = f(v)
			return existC[V]{v: v, c: inner.build(b)}
		},
		run: func(d *decoder[Ty, TyVar]) Pair[Ty, T] {
			return Pair[Ty, T]{First: d.decode(v), Second: inner.run(d)}
		},
	}
}

// ExistDiscard is Exist without the decoded variable in the witness, for the
// common case where the caller only needs it to thread Eq constraints.
func ExistDiscard[V TermVar[V], Ty, TyVar, T any](s Structure, f func(Var) Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, T] {
	var inner Co[V, Ty, TyVar, T]
	return Co[V, Ty, TyVar, T]{
		build: func(b *building[V]) rawco[V] {
			v := b.fresh(s)
			inner = f(v)
			return existC[V]{v: v, c: inner.build(b)}
		},
		run: func(d *decoder[Ty, TyVar]) T { return inner.run(d) },
	}
}

// Construct is Exist specialized to the case where s is known up front, the
// usual way a caller builds a variable standing for a concrete shape.
func Construct[V TermVar[V], Ty, TyVar, T any](s Structure, f func(Var) Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, Pair[Ty, T]] {
	return Exist[V, Ty, TyVar, T](s, f)
}

// Unify1 is "v --- t": it builds a fresh variable carrying structure s and
// unifies v with it, forcing v's shape without otherwise touching the rest of
// the constraint.
func Unify1[V TermVar[V], Ty, TyVar any](v Var, s Structure) Co[V, Ty, TyVar, struct{}] {
	return Co[V, Ty, TyVar, struct{}]{
		build: func(b *building[V]) rawco[V] {
			w := b.fresh(s)
			return existC[V]{v: w, c: eqC[V]{a: v, b: w}}
		},
		run: func(d *decoder[Ty, TyVar]) struct{} { return struct{}{} },
	}
}

// Instance instantiates x's scheme, unifies its body with v, and decodes the
// fresh witness variables in quantifier order.
func Instance[V TermVar[V], Ty, TyVar any](x V, v Var) Co[V, Ty, TyVar, []Ty] {
	hook := new(Hook[[]Var])
	return Co[V, Ty, TyVar, []Ty]{
		build: func(b *building[V]) rawco[V] {
			return instanceC[V]{x: x, v: v, hook: hook}
		},
		run: func(d *decoder[Ty, TyVar]) []Ty {
			vs := hook.get()
			out := make([]Ty, len(vs))
			for i, w := range vs {
				out[i] = d.decode(w)
			}
			return out
		},
	}
}

// InstanceDiscard is Instance without decoding the witnesses, for call sites
// that only need the unification side effect.
func InstanceDiscard[V TermVar[V], Ty, TyVar any](x V, v Var) Co[V, Ty, TyVar, struct{}] {
	hook := new(Hook[[]Var])
	return Co[V, Ty, TyVar, struct{}]{
		build: func(b *building[V]) rawco[V] {
			return instanceC[V]{x: x, v: v, hook: hook}
		},
		run: func(d *decoder[Ty, TyVar]) struct{} {
			hook.get()
			return struct{}{}
		},
	}
}

// Def binds x to the trivial, non-generalized scheme for v while solving c; a
// cheap let with no generalization.
func Def[V TermVar[V], Ty, TyVar, T any](x V, v Var, c Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, T] {
	return Co[V, Ty, TyVar, T]{
		build: func(b *building[V]) rawco[V] {
			return defC[V]{x: x, v: v, c: c.build(b)}
		},
		run: c.run,
	}
}

// LetResult is the witness of LetN: the generalized schemes in binding
// order, the union of generalizable tyvars reported for the Let node, the
// witness of the bindings' own constraint, and the witness of the
// continuation solved in the extended environment.
type LetResult[Ty, TyVar, T, U any] struct {
	Schemes       []Scheme[Ty, TyVar]
	Generalizable []TyVar
	Body          T
	Rest          U
}

// LetN enters a new rank, allocates one fresh variable per name in xs,
// builds c1 := f(vs), generalizes at exit, binds each xs[i] to its scheme in
// the environment used to build c2, then solves c2.
func LetN[V TermVar[V], Ty, TyVar, T, U any](xs []V, f func(vs []Var) Co[V, Ty, TyVar, T], c2 Co[V, Ty, TyVar, U]) Co[V, Ty, TyVar, LetResult[Ty, TyVar, T, U]] {
	hooks := make([]*Hook[scheme], len(xs))
	for i := range hooks {
		hooks[i] = new(Hook[scheme])
	}
	genHook := new(Hook[[]Var])
	var inner Co[V, Ty, TyVar, T]

	return Co[V, Ty, TyVar, LetResult[Ty, TyVar, T, U]]{
		build: func(b *building[V]) rawco[V] {
			b.enter()
			vs := make([]Var, len(xs))
			for i := range xs {
				vs[i] = b.fresh(nil)
			}
			inner = f(vs)
			c1raw := inner.build(b)
			b.leave()

			c2raw := c2.build(b)

			bindings := make([]letBinding[V], len(xs))
			for i := range xs {
				bindings[i] = letBinding[V]{x: xs[i], v: vs[i], schemeHook: hooks[i]}
			}
			return letC[V]{bindings: bindings, c1: c1raw, c2: c2raw, genHook: genHook}
		},
		run: func(d *decoder[Ty, TyVar]) LetResult[Ty, TyVar, T, U] {
			schemes := make([]Scheme[Ty, TyVar], len(hooks))
			for i, h := range hooks {
				schemes[i] = d.decodeScheme(h.get())
			}
			gens := genHook.get()
			tvs := make([]TyVar, len(gens))
			for i, v := range gens {
				tvs[i] = d.tyvar(v)
			}
			return LetResult[Ty, TyVar, T, U]{
				Schemes:       schemes,
				Generalizable: tvs,
				Body:          inner.run(d),
				Rest:          c2.run(d),
			}
		},
	}
}

// LetResult1 is LetN's witness specialized to a single binding, for the
// common let x = ... in ... case.
type LetResult1[Ty, TyVar, T, U any] struct {
	Scheme        Scheme[Ty, TyVar]
	Generalizable []TyVar
	Body          T
	Rest          U
}

// Let1 is LetN for a single name.
func Let1[V TermVar[V], Ty, TyVar, T, U any](x V, f func(Var) Co[V, Ty, TyVar, T], c2 Co[V, Ty, TyVar, U]) Co[V, Ty, TyVar, LetResult1[Ty, TyVar, T, U]] {
	n := LetN[V, Ty, TyVar, T, U]([]V{x}, func(vs []Var) Co[V, Ty, TyVar, T] { return f(vs[0]) }, c2)
	return MapCo[V, Ty, TyVar, LetResult[Ty, TyVar, T, U], LetResult1[Ty, TyVar, T, U]](
		func(r LetResult[Ty, TyVar, T, U]) LetResult1[Ty, TyVar, T, U] {
			return LetResult1[Ty, TyVar, T, U]{
				Scheme:        r.Schemes[0],
				Generalizable: r.Generalizable,
				Body:          r.Body,
				Rest:          r.Rest,
			}
		}, n)
}

// Let0 is LetN with no bindings, used exactly once per solve to wrap the
// outermost constraint: the solver demands that the topmost node be a Let
// with no bindings, so that a pool exists before the first fresh allocation.
func Let0[V TermVar[V], Ty, TyVar, T any](c Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, T] {
	n := LetN[V, Ty, TyVar, T, struct{}](nil, func(_ []Var) Co[V, Ty, TyVar, T] { return c }, Pure[V, Ty, TyVar, struct{}](struct{}{}))
	return MapCo[V, Ty, TyVar, LetResult[Ty, TyVar, T, struct{}], T](
		func(r LetResult[Ty, TyVar, T, struct{}]) T { return r.Body }, n)
}

// Correlate attaches r as the ambient source range while solving c; errors
// raised anywhere within c are reported against r unless a nested Correlate
// narrows it further.
func Correlate[V TermVar[V], Ty, TyVar, T any](r Range, c Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, T] {
	return Co[V, Ty, TyVar, T]{
		build: func(b *building[V]) rawco[V] { return rangeC[V]{r: r, c: c.build(b)} },
		run:   c.run,
	}
}

// Solve runs c: c must have been built by Let0 at its root (a bug otherwise,
// and a panic, per the protocol-misuse contract). It returns c's witness
// decoded against out, or the first Unbound/Unify/Cycle error encountered.
func Solve[V TermVar[V], Ty, TyVar, T any](rectypes bool, c Co[V, Ty, TyVar, T], out Output[Ty, TyVar]) (T, error) {
	var zero T

	b := newBuilding[V]()
	raw := c.build(b)
	lc, ok := raw.(letC[V])
	if !ok || len(lc.bindings) != 0 {
		panic("inferno: Solve requires a constraint built by Let0")
	}

	sv := newSolver[V](b.g, rectypes)
	if err := sv.solve(raw, newEnv[V](), Range{}); err != nil {
		d := newDecoder[Ty, TyVar](b.g, out, true)
		switch e := err.(type) {
		case *internalUnboundError[V]:
			return zero, &UnboundError[V]{Var: e.x, Range: e.r}
		case *internalUnifyError:
			return zero, &UnifyError[Ty]{A: d.decodeCyclic(e.a), B: d.decodeCyclic(e.b), Range: e.r}
		case *internalCycleError:
			return zero, &CycleError[Ty]{Type: d.decodeCyclic(e.v), Range: e.r}
		default:
			return zero, err
		}
	}

	d := newDecoder[Ty, TyVar](b.g, out, rectypes)
	return c.run(d), nil
}
