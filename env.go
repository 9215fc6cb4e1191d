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

import "github.com/benbjohnson/immutable"

// env is the persistent typing environment: tevar -> scheme. Extending it
// (Def, Let) never mutates an existing env value; the previous value simply
// lives on in the caller's local variable across the recursive solve call and
// is restored for free when that call returns, success or error alike.
type env[V TermVar[V]] struct {
	m *immutable.SortedMap
}

// termVarComparer adapts TermVar[V].Compare to immutable.SortedMap's untyped
// Comparer interface.
type termVarComparer[V TermVar[V]] struct{}

func (termVarComparer[V]) Compare(a, b interface{}) int {
	return a.(V).Compare(b.(V))
}

func newEnv[V TermVar[V]]() env[V] {
	return env[V]{m: immutable.NewSortedMap(termVarComparer[V]{})}
}

// extend returns a new environment with x bound to s, leaving the receiver
// untouched.
func (e env[V]) extend(x V, s scheme) env[V] {
	return env[V]{m: e.m.Set(x, s)}
}

// lookup returns the scheme bound to x, if any.
func (e env[V]) lookup(x V) (scheme, bool) {
	if e.m == nil {
		return scheme{}, false
	}
	v, ok := e.m.Get(x)
	if !ok {
		return scheme{}, false
	}
	return v.(scheme), true
}
