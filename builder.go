// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"maps"
	"slices"
)

// Validity selects which container of a stage an event goes to.
type Validity int

const (
	// ThisSessionOnly events are dropped if the session changed between
	// building the callback and firing the stage.
	ThisSessionOnly Validity = iota
	// BetweenSessions events are posted regardless of session changes.
	BetweenSessions
)

// Builder accumulates the actions of a Callback. Stage methods append
// to the builder's configuration; Build freezes a copy of it into a new
// Callback, so one Builder can serve as a template for many calls.
// Plain events and flags are shared by every Callback built. Result
// events are created anew by each Build through the constructors given
// to PostNewResults; an event passed to PostResults is shared and must
// only be used by a Builder that builds a single Callback.
//
// A Builder is not safe for concurrent use.
type Builder[S, E any] struct {
	cfg    Config
	decode ErrorDecoder[E]

	onCreate  Actions[CreateEvents]
	onSuccess resultTemplate[S]
	onError   resultTemplate[E]
	onStatus  map[int]*Actions[CreateEvents]
}

// resultTemplate is a result stage before Build: result events are
// held as constructors.
type resultTemplate[R any] struct {
	a           Actions[ResultEvents[R]]
	sessionOnly []func() ResponseEvent[R]
	multi       []func() ResponseEvent[R]
}

func (t *resultTemplate[R]) sinks(v Validity) *[]func() ResponseEvent[R] {
	if v == BetweenSessions {
		return &t.multi
	}
	return &t.sessionOnly
}

// NewBuilder returns a Builder for callbacks sharing cfg. decode turns
// call failures into E; use JSONError for JSON error bodies.
func NewBuilder[S, E any](cfg Config, decode ErrorDecoder[E]) *Builder[S, E] {
	return &Builder[S, E]{
		cfg:      cfg,
		decode:   decode,
		onStatus: map[int]*Actions[CreateEvents]{},
	}
}

// OnCreate configures the actions fired when the callback is built.
func (b *Builder[S, E]) OnCreate() *Stage {
	return &Stage{targets: []*Actions[CreateEvents]{&b.onCreate}}
}

// OnSuccess configures the actions fired on Success.
func (b *Builder[S, E]) OnSuccess() *ResultStage[S] {
	return &ResultStage[S]{t: &b.onSuccess}
}

// OnError configures the actions fired on Failure.
func (b *Builder[S, E]) OnError() *ResultStage[E] {
	return &ResultStage[E]{t: &b.onError}
}

// OnStatusCodes configures actions fired when an outcome, successful or
// not, carries one of codes. They fire before OnSuccess or OnError.
func (b *Builder[S, E]) OnStatusCodes(codes ...int) *Stage {
	st := &Stage{targets: make([]*Actions[CreateEvents], 0, len(codes))}
	for _, code := range codes {
		a, ok := b.onStatus[code]
		if !ok {
			a = new(Actions[CreateEvents])
			b.onStatus[code] = a
		}
		st.targets = append(st.targets, a)
	}
	return st
}

// Build freezes the configuration into a new Callback and fires its
// onCreate actions before returning. In debug mode a *ValidationError
// is returned, before anything is posted, if a collaborator or an
// event is nil.
func (b *Builder[S, E]) Build() (*Callback[S, E], error) {
	onStatus := make(map[int]*Actions[CreateEvents], len(b.onStatus))
	for code, a := range b.onStatus {
		onStatus[code] = freezeCreate(a)
	}
	return newCallback(b.cfg, b.decode,
		freezeCreate(&b.onCreate), freezeResult(&b.onSuccess),
		freezeResult(&b.onError), onStatus)
}

// Stage appends actions to one or more stages without an outcome.
type Stage struct {
	targets []*Actions[CreateEvents]
}

// Post schedules events with the given validity.
func (s *Stage) Post(v Validity, events ...any) *Stage {
	for _, a := range s.targets {
		c := pick(a, v)
		c.Events = append(c.Events, events...)
	}
	return s
}

// SetFlags schedules storing value into each flag.
func (s *Stage) SetFlags(value bool, flags ...BoolSetter) *Stage {
	for _, a := range s.targets {
		a.Bools = appendSettings(a.Bools, value, flags)
	}
	return s
}

// ResultStage appends actions to a stage that carries an outcome of
// type R.
type ResultStage[R any] struct {
	t *resultTemplate[R]
}

// Post schedules plain events with the given validity. They are posted
// whatever the outcome value.
func (s *ResultStage[R]) Post(v Validity, events ...any) *ResultStage[R] {
	c := pick(&s.t.a, v)
	c.Events = append(c.Events, events...)
	return s
}

// PostNewResults schedules result events with the given validity. Build
// calls each constructor once, so every Callback fills and posts its
// own event. Events that implement TransportEvent also get the status
// and headers.
func (s *ResultStage[R]) PostNewResults(v Validity, newEvents ...func() ResponseEvent[R]) *ResultStage[R] {
	dst := s.t.sinks(v)
	*dst = append(*dst, newEvents...)
	return s
}

// PostResults schedules the given result events with the given
// validity. Each is filled with the outcome value right before being
// posted. The events are shared by every Callback the Builder builds;
// use PostNewResults for a Builder that serves many calls.
func (s *ResultStage[R]) PostResults(v Validity, events ...ResponseEvent[R]) *ResultStage[R] {
	dst := s.t.sinks(v)
	for _, e := range events {
		*dst = append(*dst, func() ResponseEvent[R] { return e })
	}
	return s
}

// SetFlags schedules storing value into each flag.
func (s *ResultStage[R]) SetFlags(value bool, flags ...BoolSetter) *ResultStage[R] {
	s.t.a.Bools = appendSettings(s.t.a.Bools, value, flags)
	return s
}

func pick[T Events](a *Actions[T], v Validity) *T {
	if v == BetweenSessions {
		return &a.MultiSession
	}
	return &a.SessionOnly
}

func appendSettings(dst []FlagSetting, value bool, flags []BoolSetter) []FlagSetting {
	for _, f := range flags {
		dst = append(dst, FlagSetting{Flag: f, Value: value})
	}
	return dst
}

func freezeCreate(a *Actions[CreateEvents]) *Actions[CreateEvents] {
	return &Actions[CreateEvents]{
		SessionOnly:  CreateEvents{Events: slices.Clone(a.SessionOnly.Events)},
		MultiSession: CreateEvents{Events: slices.Clone(a.MultiSession.Events)},
		Bools:        slices.Clone(a.Bools),
	}
}

func freezeResult[R any](t *resultTemplate[R]) *Actions[ResultEvents[R]] {
	return &Actions[ResultEvents[R]]{
		SessionOnly: ResultEvents[R]{
			CreateEvents: CreateEvents{Events: slices.Clone(t.a.SessionOnly.Events)},
			Results:      newSinks(t.sessionOnly),
		},
		MultiSession: ResultEvents[R]{
			CreateEvents: CreateEvents{Events: slices.Clone(t.a.MultiSession.Events)},
			Results:      newSinks(t.multi),
		},
		Bools: slices.Clone(t.a.Bools),
	}
}

// newSinks runs every constructor. A nil constructor yields a nil event
// for debug validation to report.
func newSinks[R any](ctors []func() ResponseEvent[R]) []ResponseEvent[R] {
	if len(ctors) == 0 {
		return nil
	}
	out := make([]ResponseEvent[R], len(ctors))
	for i, ctor := range ctors {
		if ctor != nil {
			out[i] = ctor()
		}
	}
	return out
}

// StatusCodes returns the status codes with scheduled actions, sorted.
func (b *Builder[S, E]) StatusCodes() []int {
	return slices.Sorted(maps.Keys(b.onStatus))
}
