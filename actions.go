// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"fmt"
	"reflect"
)

// Events is the constraint satisfied by the two event container shapes:
// CreateEvents for stages without an outcome, ResultEvents for stages
// that carry one.
type Events interface {
	plain() []any
	validate(name string) error
}

// CreateEvents holds plain events. They carry no outcome.
type CreateEvents struct {
	Events []any
}

func (e CreateEvents) plain() []any { return e.Events }

func (e CreateEvents) validate(name string) error {
	for i, ev := range e.Events {
		if absent(ev) {
			return &ValidationError{Field: fmt.Sprintf("%s events[%d]", name, i)}
		}
	}
	return nil
}

// ResultEvents holds plain events plus result events that receive the
// outcome value before being posted.
type ResultEvents[R any] struct {
	CreateEvents
	Results []ResponseEvent[R]
}

func (e ResultEvents[R]) validate(name string) error {
	if err := e.CreateEvents.validate(name); err != nil {
		return err
	}
	for i, ev := range e.Results {
		if absent(ev) {
			return &ValidationError{Field: fmt.Sprintf("%s results[%d]", name, i)}
		}
	}
	return nil
}

// Actions is the frozen set of effects scheduled for one callback stage.
type Actions[T Events] struct {
	// SessionOnly events are posted only while the session that
	// created the callback is still current.
	SessionOnly T
	// MultiSession events are posted regardless of session changes.
	MultiSession T
	// Bools are stored, in order, before anything is posted.
	Bools []FlagSetting
}

// Validate reports the first nil entry in any of the collections.
func (a *Actions[T]) Validate() error {
	return a.validate("")
}

// validate is Validate with field names prefixed by stage.
func (a *Actions[T]) validate(stage string) error {
	if stage != "" {
		stage += " "
	}
	if err := a.SessionOnly.validate(stage + "session-only"); err != nil {
		return err
	}
	if err := a.MultiSession.validate(stage + "multi-session"); err != nil {
		return err
	}
	for i, b := range a.Bools {
		if absent(b.Flag) {
			return &ValidationError{Field: fmt.Sprintf("%sbools[%d]", stage, i)}
		}
	}
	return nil
}

func (a *Actions[T]) String() string {
	return fmt.Sprintf("Actions{sessionOnly=%v, multiSession=%v, bools=%d}",
		a.SessionOnly, a.MultiSession, len(a.Bools))
}

// absent reports whether v is nil or a typed nil of a nilable kind.
func absent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}
