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

// Deep is a finite, user-built tree used to describe a composite type in one
// shot, rather than through nested calls to Exist/Construct by hand: a
// DeepVar is an existing variable, a DeepStructure is a shape whose children
// are themselves Deep trees.
type Deep interface {
	isDeep()
}

// DeepVar wraps an already-allocated variable; Build shares it directly, no
// new existential is introduced for it.
type DeepVar struct{ V Var }

func (DeepVar) isDeep() {}

// DeepStructure describes a shape whose children are Deep trees. MakeStruct
// receives the already-materialized child variables, in the same order as
// Children, and returns the Structure to attach to the fresh variable Build
// allocates for this node.
type DeepStructure struct {
	Children   []Deep
	MakeStruct func(children []Var) Structure
}

func (DeepStructure) isDeep() {}

// Build converts deep into a chain of existentials -- one fresh variable per
// DeepStructure node, none for DeepVar leaves, which are shared as-is -- and
// hands the root variable to f. No recursive tying is needed since deep
// trees are finite.
func Build[V TermVar[V], Ty, TyVar, T any](deep Deep, f func(Var) Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, T] {
	switch d := deep.(type) {
	case DeepVar:
		return f(d.V)
	case DeepStructure:
		return buildChildren[V, Ty, TyVar, T](d.Children, nil, d.MakeStruct, f)
	default:
		panic("inferno: malformed deep type")
	}
}

func buildChildren[V TermVar[V], Ty, TyVar, T any](remaining []Deep, acc []Var, mk func([]Var) Structure, f func(Var) Co[V, Ty, TyVar, T]) Co[V, Ty, TyVar, T] {
	if len(remaining) == 0 {
		return ExistDiscard[V, Ty, TyVar, T](mk(acc), f)
	}
	head, rest := remaining[0], remaining[1:]
	return Build[V, Ty, TyVar, T](head, func(v Var) Co[V, Ty, TyVar, T] {
		return buildChildren[V, Ty, TyVar, T](rest, append(acc, v), mk, f)
	})
}
