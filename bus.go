// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

// Bus accepts events for delivery to listeners. Delivery order and
// threading are the bus's concern. Post returns nothing; a bus that
// panics aborts the firing that called it.
type Bus interface {
	Post(event any)
}

// BusFunc adapts a function to a Bus.
type BusFunc func(event any)

// Post implements Bus.
func (f BusFunc) Post(event any) { f(event) }

// Discard is a Bus that drops every event.
var Discard Bus = BusFunc(func(any) {})
