// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"code.hybscloud.com/kont"
)

// firingContext is what a firing acts on.
type firingContext struct {
	bus Bus
}

// firingDispatcher is the structural interface for firing operations.
// DispatchFiring never blocks on its own; Post may block only as long
// as the bus does.
type firingDispatcher interface {
	DispatchFiring(ctx *firingContext) kont.Resumed
}

// SetFlag is the effect operation for storing a flag value.
// Perform(SetFlag{Setting: s}) stores s.Value into s.Flag.
type SetFlag struct {
	kont.Phantom[struct{}]
	Setting FlagSetting
}

// DispatchFiring stores the flag. Never touches the bus.
func (s SetFlag) DispatchFiring(*firingContext) kont.Resumed {
	s.Setting.apply()
	return struct{}{}
}

// Post is the effect operation for posting an event.
// Perform(Post{Event: e}) hands e to the bus.
type Post struct {
	kont.Phantom[struct{}]
	Event any
}

// DispatchFiring posts the event. Panics raised by the bus propagate.
func (p Post) DispatchFiring(ctx *firingContext) kont.Resumed {
	ctx.bus.Post(p.Event)
	return struct{}{}
}

// Fill is the effect operation for populating a result event with the
// outcome of a call. It is always followed by a Post of the same event.
type Fill[R any] struct {
	kont.Phantom[struct{}]
	Event ResponseEvent[R]
	Value R
	// Meta is nil when the outcome carried no transport metadata.
	Meta *Meta
}

// DispatchFiring sets the response, then status and headers when the
// event wants them and metadata is available.
func (f Fill[R]) DispatchFiring(*firingContext) kont.Resumed {
	f.Event.SetResponse(f.Value)
	if te, ok := f.Event.(TransportEvent); ok && f.Meta != nil {
		te.SetHeaders(f.Meta.Header)
		te.SetStatus(f.Meta.Status)
	}
	return struct{}{}
}
