// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"fmt"
	"maps"
	"slices"

	"code.hybscloud.com/atomix"
)

// State is the lifecycle state of a Callback.
type State uint32

const (
	// Created: onCreate has fired, no outcome yet.
	Created State = iota
	// Succeeded: Success was delivered.
	Succeeded
	// Failed: Failure was delivered.
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", uint32(s))
}

// Serial numbers callbacks in build order. Log lines of one call carry
// its serial.
type Serial = uint32

var serials atomix.Uint32

// Callback is the receiver of one asynchronous call's outcome.
// S is the success value type, E the typed error value type.
//
// A Callback fires its onCreate actions when built, then exactly one
// of Success or Failure. It is not reusable.
type Callback[S, E any] struct {
	cfg     Config
	decode  ErrorDecoder[E]
	checker SessionChecker
	serial  Serial

	onCreate  *Actions[CreateEvents]
	onSuccess *Actions[ResultEvents[S]]
	onError   *Actions[ResultEvents[E]]
	onStatus  map[int]*Actions[CreateEvents]

	fired     atomix.Uint32
	state     atomix.Uint32
	finalized atomix.Uint32
}

// newCallback validates in debug mode, captures the session, and fires
// onCreate. Nothing is posted if validation fails.
func newCallback[S, E any](cfg Config, decode ErrorDecoder[E],
	onCreate *Actions[CreateEvents], onSuccess *Actions[ResultEvents[S]],
	onError *Actions[ResultEvents[E]], onStatus map[int]*Actions[CreateEvents]) (*Callback[S, E], error) {
	cfg = cfg.withDefaults()
	c := &Callback[S, E]{
		cfg:       cfg,
		decode:    decode,
		serial:    serials.Add(1),
		onCreate:  onCreate,
		onSuccess: onSuccess,
		onError:   onError,
		onStatus:  onStatus,
	}
	if cfg.Debug {
		if err := c.validate(); err != nil {
			return nil, err
		}
	}
	c.checker = NewSessionChecker(cfg.Sessions)
	FireCommon(cfg.Bus, c.onCreate, c.checker.SameSession())
	return c, nil
}

func (c *Callback[S, E]) validate() error {
	if err := c.cfg.validate(); err != nil {
		return err
	}
	if c.decode == nil {
		return &ValidationError{Field: "error decoder"}
	}
	if err := c.onCreate.validate("onCreate"); err != nil {
		return err
	}
	if err := c.onSuccess.validate("onSuccess"); err != nil {
		return err
	}
	if err := c.onError.validate("onError"); err != nil {
		return err
	}
	for _, code := range slices.Sorted(maps.Keys(c.onStatus)) {
		if err := c.onStatus[code].validate(fmt.Sprintf("onStatus(%d)", code)); err != nil {
			return err
		}
	}
	return nil
}

// Success delivers a successful outcome. value may be absent (a nil
// pointer, for instance); result events still fire with it. meta may
// be nil.
//
// Shared handlers run first, then the status-code actions for
// meta.Status, then the onSuccess actions.
func (c *Callback[S, E]) Success(value S, meta *Meta) error {
	if !c.terminate(Succeeded) {
		return ErrAlreadyFired
	}
	present := !absent(value)
	if present {
		c.cfg.Handlers.Dispatch(value)
	}
	c.fireStatus(meta)
	FireResponse(c.cfg.Bus, c.onSuccess, value, present, meta, c.checker.SameSession(), true)
	c.finalized.Store(1)
	return nil
}

// Failure delivers a failed outcome. err is converted with the
// callback's ErrorDecoder; *NetworkError and undecodable failures
// leave the typed error absent, which suppresses every result event of
// the onError stage while flags and plain events still fire.
//
// The status-code actions for the status of an *HTTPError fire before
// the onError actions.
func (c *Callback[S, E]) Failure(err error) error {
	if !c.terminate(Failed) {
		return ErrAlreadyFired
	}
	value, present := convertError(&c.cfg, c.serial, c.decode, err)
	var meta *Meta
	if he, ok := httpErrorOf(err); ok {
		meta = he.Meta()
	}
	c.fireStatus(meta)
	FireResponse(c.cfg.Bus, c.onError, value, present, meta, c.checker.SameSession(), false)
	c.finalized.Store(1)
	return nil
}

// terminate moves the callback to its terminal state. It reports false
// if a terminal state was already reached.
func (c *Callback[S, E]) terminate(to State) bool {
	if c.fired.Add(1) != 1 {
		c.cfg.Logger.Warnw("terminal outcome delivered twice",
			"serial", c.serial, "state", c.State(), "outcome", to)
		return false
	}
	c.state.Store(uint32(to))
	return true
}

func (c *Callback[S, E]) fireStatus(meta *Meta) {
	if meta == nil {
		return
	}
	if a, ok := c.onStatus[meta.Status]; ok {
		FireCommon(c.cfg.Bus, a, c.checker.SameSession())
	}
}

// State returns the lifecycle state.
func (c *Callback[S, E]) State() State { return State(c.state.Load()) }

// Finalized reports whether the terminal stage has fired completely:
// every flag stored and every event handed to the bus.
func (c *Callback[S, E]) Finalized() bool { return c.finalized.Load() != 0 }

// Serial returns the callback's serial number.
func (c *Callback[S, E]) Serial() Serial { return c.serial }

// SameSession reports whether the session that created the callback
// is still current.
func (c *Callback[S, E]) SameSession() bool { return c.checker.SameSession() }

func (c *Callback[S, E]) String() string {
	return fmt.Sprintf("Callback{serial=%d, state=%s, session=%s, config=%s,\n"+
		"onCreate=%s,\nonSuccess=%s,\nonError=%s,\nonStatus=%d codes}",
		c.serial, c.State(), c.checker.Start(), c.cfg,
		c.onCreate, c.onSuccess, c.onError, len(c.onStatus))
}
