// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import "code.hybscloud.com/atomix"

// BoolSetter is a boolean that a firing can store into.
// Both *Flag and *sync/atomic.Bool satisfy it.
type BoolSetter interface {
	Store(v bool)
}

// Flag is an atomic boolean, typically an "is loading" or
// "needs refresh" marker shared with UI code.
// The zero value is false and ready for use.
type Flag struct {
	v atomix.Uint32
}

// Store sets the flag to v.
func (f *Flag) Store(v bool) {
	if v {
		f.v.Store(1)
		return
	}
	f.v.Store(0)
}

// Load returns the current value.
func (f *Flag) Load() bool {
	return f.v.Load() != 0
}

// FlagSetting pairs a flag with the value a firing stores into it.
type FlagSetting struct {
	Flag  BoolSetter
	Value bool
}

func (s FlagSetting) apply() {
	s.Flag.Store(s.Value)
}
