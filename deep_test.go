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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwarfmaster/inferno"
)

func deepArrow(a, b inferno.Deep) inferno.Deep {
	return inferno.DeepStructure{
		Children: []inferno.Deep{a, b},
		MakeStruct: func(children []inferno.Var) inferno.Structure {
			return arrowS(children[0], children[1])
		},
	}
}

// TestBuildMaterializesSharedLeaves checks that a Deep tree built from a
// single DeepStructure node referencing the same DeepVar leaf twice decodes
// to a shape whose two children are the very same variable, rather than
// Build allocating a fresh existential per occurrence of the shared leaf.
//
// Build has no combinator of its own for decoding an arbitrary pre-existing
// Var, so the test routes root through Def + Instance (a mono scheme's
// Instance is a direct unification, per instantiate's zero-quantifier
// shortcut) to unify it with an existential that exist can decode.
func TestBuildMaterializesSharedLeaves(t *testing.T) {
	wrapped := let0[inferno.Pair[ty, struct{}]](
		existDiscard[inferno.Pair[ty, struct{}]](nil, func(v inferno.Var) inferno.Co[testVar, ty, tyvar, inferno.Pair[ty, struct{}]] {
			shape := deepArrow(inferno.DeepVar{V: v}, inferno.DeepVar{V: v})
			return exist[struct{}](nil, func(target inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
				return inferno.Build[testVar, ty, tyvar, struct{}](shape, func(root inferno.Var) inferno.Co[testVar, ty, tyvar, struct{}] {
					return defC[struct{}]("root", root, typeIdent("root", target))
				})
			})
		}),
	)
	result, err := solve[inferno.Pair[ty, struct{}]](false, wrapped)
	require.NoError(t, err)

	got := result.First
	require.Equal(t, "arrow", got.kind)
	require.Len(t, got.children, 2)
	require.Equal(t, "var", got.children[0].kind)
	require.Equal(t, "var", got.children[1].kind)
	require.Equal(t, got.children[0].v, got.children[1].v, "Build must share the DeepVar leaf rather than duplicate it")
}
