// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb_test

import (
	"testing"

	"code.hybscloud.com/evcb"
)

func TestSerialMonotonic(t *testing.T) {
	b := evcb.NewBuilder[*Dog, *APIError](evcb.Config{Bus: evcb.Discard}, evcb.JSONError[*APIError]())

	var prev evcb.Serial
	for i := range 3 {
		cb, err := b.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if i > 0 && cb.Serial() <= prev {
			t.Fatalf("serials not increasing: %d <= %d", cb.Serial(), prev)
		}
		prev = cb.Serial()
	}
}
