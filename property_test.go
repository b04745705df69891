// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb_test

import (
	"reflect"
	"testing"
	"testing/quick"

	"code.hybscloud.com/evcb"
)

// TestPropertyFiringOrder proves that for any arrangement of flags and
// events, a firing stores every flag before the first post and posts
// session-only events, then multi-session events, then result events,
// each group in insertion order.
func TestPropertyFiringOrder(t *testing.T) {
	property := func(sessionOnly, multi []int, nResults, nFlags uint8, same bool) bool {
		flags := make([]evcb.Flag, nFlags%5)
		results := make([]*evcb.Response[int], nResults%5)

		a := &evcb.Actions[evcb.ResultEvents[int]]{}
		for _, v := range sessionOnly {
			a.SessionOnly.Events = append(a.SessionOnly.Events, v)
		}
		for _, v := range multi {
			a.MultiSession.Events = append(a.MultiSession.Events, v)
		}
		for i := range results {
			results[i] = new(evcb.Response[int])
			a.MultiSession.Results = append(a.MultiSession.Results, results[i])
		}
		for i := range flags {
			a.Bools = append(a.Bools, evcb.FlagSetting{Flag: &flags[i], Value: true})
		}

		var posted []any
		ok := true
		bus := evcb.BusFunc(func(e any) {
			for i := range flags {
				ok = ok && flags[i].Load()
			}
			posted = append(posted, e)
		})
		evcb.FireResponse(bus, a, 42, true, nil, same, false)

		var want []any
		if same {
			want = append(want, a.SessionOnly.Events...)
		}
		want = append(want, a.MultiSession.Events...)
		for _, r := range results {
			want = append(want, r)
		}
		if len(want) == 0 && len(posted) == 0 {
			return ok
		}
		return ok && reflect.DeepEqual(want, posted)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyTraceMatchesExec proves that Trace lists exactly the
// posts Exec performs.
func TestPropertyTraceMatchesExec(t *testing.T) {
	property := func(sessionOnly, multi []string, same bool) bool {
		a := &evcb.Actions[evcb.CreateEvents]{}
		for _, v := range sessionOnly {
			a.SessionOnly.Events = append(a.SessionOnly.Events, v)
		}
		for _, v := range multi {
			a.MultiSession.Events = append(a.MultiSession.Events, v)
		}

		var traced []any
		for _, op := range evcb.Trace(evcb.CommonProgram(a, same)) {
			p, ok := op.(evcb.Post)
			if !ok {
				return false
			}
			traced = append(traced, p.Event)
		}
		var r recorder
		evcb.FireCommon(&r, a, same)
		return reflect.DeepEqual(traced, r.Events())
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyLoopFIFO proves that a Loop delivers any sequence in the
// order it was posted, whatever its capacity.
func TestPropertyLoopFIFO(t *testing.T) {
	property := func(payload []int, capacity uint8) bool {
		var got []int
		l := evcb.NewLoop(evcb.BusFunc(func(e any) { got = append(got, e.(int)) }), int(capacity%8))
		for i, v := range payload {
			l.Post(v)
			if i%7 == 6 {
				l.TryDrain()
			}
		}
		l.TryDrain()
		if len(payload) == 0 && len(got) == 0 {
			return true
		}
		return reflect.DeepEqual(payload, got)
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}

// TestPropertyTerminalOnce proves that whatever the sequence of
// outcomes delivered, exactly one takes effect.
func TestPropertyTerminalOnce(t *testing.T) {
	property := func(outcomes []bool) bool {
		var r recorder
		b := evcb.NewBuilder[*Dog, *APIError](evcb.Config{Bus: &r}, evcb.JSONError[*APIError]())
		b.OnSuccess().Post(evcb.BetweenSessions, "ok")
		b.OnError().Post(evcb.BetweenSessions, "failed")
		cb, err := b.Build()
		if err != nil {
			return false
		}
		accepted := 0
		for _, success := range outcomes {
			var err error
			if success {
				err = cb.Success(&Dog{}, nil)
			} else {
				err = cb.Failure(&evcb.HTTPError{Status: 500})
			}
			if err == nil {
				accepted++
			}
		}
		if len(outcomes) == 0 {
			return accepted == 0 && len(r.Events()) == 0
		}
		return accepted == 1 && len(r.Events()) == 1
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}
