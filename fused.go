// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"code.hybscloud.com/kont"
)

// SetFlagThen stores a flag and then continues with next.
// Fuses Perform(SetFlag{Setting: s}) + Then.
func SetFlagThen[B any](s FlagSetting, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(SetFlag{Setting: s}), next)
}

// PostThen posts an event and then continues with next.
// Fuses Perform(Post{Event: e}) + Then.
func PostThen[B any](e any, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Post{Event: e}), next)
}

// FillPostThen populates a result event, posts it, and then continues
// with next.
// Fuses Perform(Fill[R]{...}) + Then + PostThen.
func FillPostThen[R, B any](e ResponseEvent[R], v R, meta *Meta, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Fill[R]{Event: e, Value: v, Meta: meta}), PostThen(e, next))
}

// Done finishes a firing program.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}
