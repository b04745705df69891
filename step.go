// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"code.hybscloud.com/kont"
)

// Trace evaluates a firing program one effect at a time without
// applying any effect, and returns the operations in the order Exec
// would apply them. Flags are not stored, result events are not
// filled and nothing is posted.
//
// Trace is meant for diagnostics: it shows exactly what a stage will
// do for a given liveness verdict and outcome.
func Trace[R any](program kont.Eff[R]) []kont.Operation {
	var ops []kont.Operation
	_, susp := kont.StepExpr(kont.Reify(program))
	for susp != nil {
		ops = append(ops, susp.Op())
		_, susp = susp.Resume(struct{}{})
	}
	return ops
}
