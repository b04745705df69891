// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"slices"
	"sync"
)

// Router is a synchronous Bus that delivers each posted event to the
// listeners whose type accepts it, in subscription order, on the
// posting goroutine. Matching follows Handle: an interface listener
// receives every implementation. Events nobody listens to are dropped.
//
// The zero value is ready for use. Router is safe for concurrent use;
// listeners may subscribe, unsubscribe and post from inside a delivery.
type Router struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []routerListener // copy-on-write, read without mu
	postHooks []routerHook
}

type routerListener struct {
	id  uint64
	reg Registration
}

type routerHook struct {
	id uint64
	fn func(event any, delivered int)
}

// Subscribe registers fn for every event assignable to T and returns a
// function that removes it. Calling cancel more than once is harmless.
func Subscribe[T any](r *Router, fn func(T)) (cancel func()) {
	reg := Handle(fn)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.listeners = append(slices.Clip(r.listeners), routerListener{id: id, reg: reg})
	return func() { r.unsubscribe(id) }
}

func (r *Router) unsubscribe(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Post iterates over a snapshot, so replace rather than mutate.
	r.listeners = slices.DeleteFunc(slices.Clone(r.listeners), func(l routerListener) bool {
		return l.id == id
	})
}

// OnPost registers a debug hook called after every Post with the event
// and the number of listeners that received it. Returns a function
// that removes the hook.
func (r *Router) OnPost(fn func(event any, delivered int)) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := r.nextID
	r.postHooks = append(slices.Clip(r.postHooks), routerHook{id: id, fn: fn})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.postHooks = slices.DeleteFunc(slices.Clone(r.postHooks), func(h routerHook) bool {
			return h.id == id
		})
	}
}

// Post implements Bus.
func (r *Router) Post(event any) {
	r.mu.Lock()
	listeners, hooks := r.listeners, r.postHooks
	r.mu.Unlock()

	delivered := 0
	for _, l := range listeners {
		if l.reg.call(event) {
			delivered++
		}
	}
	for _, h := range hooks {
		h.fn(event, delivered)
	}
}

// Len returns the number of active listeners.
func (r *Router) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
