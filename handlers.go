// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"reflect"
	"slices"
)

// Registration binds a function to the values it accepts.
// Create one with Handle.
type Registration struct {
	typ  reflect.Type
	call func(v any) bool
}

// Handle returns a Registration that calls fn with every value
// assignable to T. If T is an interface, every implementation
// matches; otherwise only values of exactly type T match.
func Handle[T any](fn func(T)) Registration {
	return Registration{
		typ: reflect.TypeFor[T](),
		call: func(v any) bool {
			t, ok := v.(T)
			if ok {
				fn(t)
			}
			return ok
		},
	}
}

// Type returns the type the registration accepts.
func (r Registration) Type() reflect.Type { return r.typ }

// Handlers is an immutable registry of shared result handlers: hooks
// run on every successful call whose result matches, regardless of the
// callback that received it. Build it once at the composition root and
// pass it through Config.
//
// A nil *Handlers is an empty registry.
type Handlers struct {
	regs []Registration
}

// NewHandlers returns a registry holding regs.
func NewHandlers(regs ...Registration) *Handlers {
	return &Handlers{regs: slices.Clone(regs)}
}

// Dispatch calls every handler that accepts v, in registration order,
// and returns how many were called. A nil v matches nothing.
func (h *Handlers) Dispatch(v any) int {
	if h == nil || v == nil {
		return 0
	}
	n := 0
	for _, r := range h.regs {
		if r.call(v) {
			n++
		}
	}
	return n
}

// Len returns the number of registered handlers.
func (h *Handlers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.regs)
}

func (h *Handlers) String() string {
	if h == nil {
		return "Handlers[]"
	}
	s := "Handlers["
	for i, r := range h.regs {
		if i > 0 {
			s += " "
		}
		s += r.typ.String()
	}
	return s + "]"
}
