// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"code.hybscloud.com/kont"
)

// CommonProgram returns the firing program of a stage without an
// outcome: flags in order, then session-only events if sameSession,
// then multi-session events.
func CommonProgram[T Events](a *Actions[T], sameSession bool) kont.Eff[struct{}] {
	return commonThen(a, sameSession, Done())
}

// ResponseProgram returns the firing program of a result stage.
//
// It starts like CommonProgram. If the outcome is present, or postNull
// is set, every result event is then filled with value and meta and
// posted: session-only ones only if sameSession, multi-session ones
// always. An absent outcome with postNull unset fires no result event.
func ResponseProgram[R any](a *Actions[ResultEvents[R]], value R, present bool, meta *Meta, sameSession, postNull bool) kont.Eff[struct{}] {
	tail := Done()
	if present || postNull {
		tail = fillAllThen(a.MultiSession.Results, value, meta, tail)
		if sameSession {
			tail = fillAllThen(a.SessionOnly.Results, value, meta, tail)
		}
	}
	return commonThen(a, sameSession, tail)
}

// FireCommon runs CommonProgram on bus.
func FireCommon[T Events](bus Bus, a *Actions[T], sameSession bool) {
	Exec(bus, CommonProgram(a, sameSession))
}

// FireResponse runs ResponseProgram on bus.
func FireResponse[R any](bus Bus, a *Actions[ResultEvents[R]], value R, present bool, meta *Meta, sameSession, postNull bool) {
	Exec(bus, ResponseProgram(a, value, present, meta, sameSession, postNull))
}

// commonThen prepends the flag and plain-event effects of a to next.
// Built back to front so the program runs front to back.
func commonThen[T Events](a *Actions[T], sameSession bool, next kont.Eff[struct{}]) kont.Eff[struct{}] {
	next = postAllThen(a.MultiSession.plain(), next)
	if sameSession {
		next = postAllThen(a.SessionOnly.plain(), next)
	}
	for i := len(a.Bools) - 1; i >= 0; i-- {
		next = SetFlagThen(a.Bools[i], next)
	}
	return next
}

func postAllThen(events []any, next kont.Eff[struct{}]) kont.Eff[struct{}] {
	for i := len(events) - 1; i >= 0; i-- {
		next = PostThen(events[i], next)
	}
	return next
}

func fillAllThen[R any](events []ResponseEvent[R], v R, meta *Meta, next kont.Eff[struct{}]) kont.Eff[struct{}] {
	for i := len(events) - 1; i >= 0; i-- {
		next = FillPostThen(events[i], v, meta, next)
	}
	return next
}
