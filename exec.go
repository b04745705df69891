// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"code.hybscloud.com/kont"
)

// firingHandler implements kont.Handler for firing effects.
// Held by value so a firing allocates only its context.
type firingHandler[R any] struct {
	ctx *firingContext
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h firingHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	fop, ok := op.(firingDispatcher)
	if !ok {
		panic("evcb: unhandled effect in firingHandler")
	}
	return fop.DispatchFiring(h.ctx), true
}

// Exec runs a firing program against bus on the calling goroutine.
// Every effect is applied synchronously and in program order, so Exec
// returns only after the last post has been handed to the bus.
func Exec[R any](bus Bus, program kont.Eff[R]) R {
	h := firingHandler[R]{ctx: &firingContext{bus: bus}}
	return kont.Handle(program, h)
}
