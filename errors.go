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

import "fmt"

// UnboundError is returned when an Instance constraint references a term
// variable with no binding in the ambient environment.
type UnboundError[V any] struct {
	Var   V
	Range Range
}

func (e *UnboundError[V]) Error() string {
	return fmt.Sprintf("Unbound identifier %v", e.Var)
}

// UnifyError is returned when unification is asked to merge two structures
// with incompatible head constructors. A and B are decoded with the cyclic
// decoder, since they may not be finite even when the solve as a whole ran
// with the occurs check enabled.
type UnifyError[Ty any] struct {
	A, B  Ty
	Range Range
}

func (e *UnifyError[Ty]) Error() string {
	return fmt.Sprintf("Failed to unify %v with %v", e.A, e.B)
}

// CycleError is returned when, under rectypes = false, unification would
// create a cyclic type. Type is decoded with the cyclic decoder.
type CycleError[Ty any] struct {
	Type  Ty
	Range Range
}

func (e *CycleError[Ty]) Error() string {
	return fmt.Sprintf("Implicitly recursive types are not supported: %v", e.Type)
}
