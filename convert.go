// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/pkg/errors"
)

// ErrorDecoder converts the raw failure of a call into the typed error
// value posted by the error stage. A non-nil error means the failure
// has no usable typed form.
type ErrorDecoder[E any] func(err error) (E, error)

// JSONError returns an ErrorDecoder that decodes the body of an
// *HTTPError as JSON into E.
func JSONError[E any]() ErrorDecoder[E] {
	return func(err error) (E, error) {
		var v E
		he, ok := httpErrorOf(err)
		if !ok {
			return v, errors.Errorf("evcb: %T carries no response body", err)
		}
		if err := jsonv2.Unmarshal(he.Body, &v); err != nil {
			return v, errors.Wrapf(err, "evcb: decode %d error body", he.Status)
		}
		return v, nil
	}
}

// convertError runs decode on err. Network failures and decode errors
// yield an absent value; decode errors are logged at debug level.
func convertError[E any](c *Config, serial Serial, decode ErrorDecoder[E], err error) (E, bool) {
	var zero E
	if decode == nil || err == nil || IsNetworkError(err) {
		return zero, false
	}
	v, derr := decode(err)
	if derr != nil {
		c.Logger.Debugw("could not convert call failure",
			"serial", serial, "failure", err, "error", derr)
		return zero, false
	}
	if absent(v) {
		return zero, false
	}
	return v, true
}
