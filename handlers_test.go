// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb_test

import (
	"reflect"
	"testing"

	"code.hybscloud.com/evcb"
)

func TestHandlersDispatchOrder(t *testing.T) {
	var calls []string
	h := evcb.NewHandlers(
		evcb.Handle(func(*Dog) { calls = append(calls, "dog") }),
		evcb.Handle(func(Animal) { calls = append(calls, "animal") }),
		evcb.Handle(func(any) { calls = append(calls, "any") }),
		evcb.Handle(func(Rock) { calls = append(calls, "rock") }),
	)

	if n := h.Dispatch(&Dog{}); n != 3 {
		t.Fatalf("dispatched to %d handlers, want 3", n)
	}
	want := []string{"dog", "animal", "any"}
	if !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls got %v, want %v", calls, want)
	}
}

func TestHandlersNil(t *testing.T) {
	var h *evcb.Handlers
	if n := h.Dispatch(&Dog{}); n != 0 {
		t.Fatalf("nil registry dispatched %d", n)
	}
	if h.Len() != 0 || h.String() != "Handlers[]" {
		t.Fatalf("nil registry: len=%d str=%q", h.Len(), h.String())
	}

	called := false
	h = evcb.NewHandlers(evcb.Handle(func(any) { called = true }))
	if n := h.Dispatch(nil); n != 0 || called {
		t.Fatal("nil value must match nothing")
	}
}

func TestHandlersImmutable(t *testing.T) {
	regs := []evcb.Registration{evcb.Handle(func(Rock) {})}
	h := evcb.NewHandlers(regs...)
	regs[0] = evcb.Handle(func(*Dog) {})
	if h.Dispatch(Rock{}) != 1 {
		t.Fatal("registry shares the caller's slice")
	}
}

func TestRegistrationType(t *testing.T) {
	r := evcb.Handle(func(Animal) {})
	if r.Type() != reflect.TypeFor[Animal]() {
		t.Fatalf("type got %v", r.Type())
	}
	h := evcb.NewHandlers(r, evcb.Handle(func(Rock) {}))
	if got, want := h.String(), "Handlers[evcb_test.Animal evcb_test.Rock]"; got != want {
		t.Fatalf("String got %q, want %q", got, want)
	}
}
