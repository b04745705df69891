// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrAlreadyFired is returned when a callback receives a second
// terminal outcome. The second outcome is ignored.
var ErrAlreadyFired = errors.New("evcb: terminal stage already fired")

// ValidationError reports a configuration mistake found by the
// debug-mode checks of Builder.Build.
type ValidationError struct {
	// Field names the missing collaborator or the nil collection entry,
	// e.g. "bus" or "onSuccess multi-session results[1]".
	Field string
}

func (e *ValidationError) Error() string {
	return "evcb: invalid callback configuration: nil " + e.Field
}

// HTTPError is the failure of a call the server answered with a
// non-2xx status. Body holds the raw response body.
type HTTPError struct {
	Status int
	Header http.Header
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("evcb: http status %d", e.Status)
}

// Meta returns the transport metadata of the failed response.
func (e *HTTPError) Meta() *Meta {
	return &Meta{Status: e.Status, Header: e.Header}
}

// NetworkError is the failure of a call that produced no response:
// dial, TLS, timeout or body read errors.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "evcb: network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err, or any error it wraps, is a
// *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// httpErrorOf extracts the *HTTPError carried by err, if any.
func httpErrorOf(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
