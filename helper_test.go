// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb_test

import (
	"slices"
	"sync"

	"code.hybscloud.com/evcb"
)

// recorder is a Bus that keeps every posted event.
type recorder struct {
	mu     sync.Mutex
	events []any
}

func (r *recorder) Post(event any) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

func (r *recorder) Events() []any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// switchable is a SessionSource whose answer the test flips.
type switchable struct {
	mu  sync.Mutex
	cur evcb.SessionID
}

func (s *switchable) CurrentSession() evcb.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

func (s *switchable) set(id string) {
	s.mu.Lock()
	s.cur = evcb.NewSessionID(id)
	s.mu.Unlock()
}

// Animal and Dog exercise interface matching in handlers and routers.
type Animal interface{ Sound() string }

type Dog struct{ Name string }

func (d *Dog) Sound() string { return "woof" }

type Rock struct{}

// APIError is the typed error body used across tests.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
