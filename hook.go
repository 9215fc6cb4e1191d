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

// Hook is a write-once cell connecting the solver's construction phase to the
// decoding continuation: the solver writes a result into a Hook while walking
// the constraint tree, and the matching combinator's continuation reads it
// back while decoding. Reading before the write, or writing twice, is a
// programmer error in how a constraint was built or solved, not a type error,
// so both fail loudly instead of returning an error.
type Hook[T any] struct {
	full bool
	val  T
}

// set writes the hook's value. Panics if the hook has already been written.
func (h *Hook[T]) set(v T) {
	if h.full {
		panic("inferno: hook written twice")
	}
	h.val = v
	h.full = true
}

// get reads the hook's value. Panics if the hook has not been written yet.
func (h *Hook[T]) get() T {
	if !h.full {
		panic("inferno: hook read before it was written")
	}
	return h.val
}
