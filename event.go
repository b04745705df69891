// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import "net/http"

// ResponseEvent is an event that carries the outcome of a call.
// The poster calls SetResponse right before posting it.
type ResponseEvent[R any] interface {
	SetResponse(r R)
}

// TransportEvent is implemented by result events that also want the
// HTTP status and headers of the response.
type TransportEvent interface {
	SetHeaders(h http.Header)
	SetStatus(code int)
}

// Meta is the transport metadata of a completed call.
type Meta struct {
	Status int
	Header http.Header
}

// Response is the default ResponseEvent. Post a *Response[R].
type Response[R any] struct {
	Value R
}

// SetResponse implements ResponseEvent.
func (e *Response[R]) SetResponse(r R) { e.Value = r }

// NewResponse returns a new *Response[R]. Pass NewResponse[R] to
// ResultStage.PostNewResults.
func NewResponse[R any]() ResponseEvent[R] { return new(Response[R]) }

// TransportResponse is a ResponseEvent that also records status and
// headers. Post a *TransportResponse[R].
type TransportResponse[R any] struct {
	Response[R]
	Status int
	Header http.Header
}

// SetHeaders implements TransportEvent.
func (e *TransportResponse[R]) SetHeaders(h http.Header) { e.Header = h }

// SetStatus implements TransportEvent.
func (e *TransportResponse[R]) SetStatus(code int) { e.Status = code }

// NewTransportResponse returns a new *TransportResponse[R].
func NewTransportResponse[R any]() ResponseEvent[R] { return new(TransportResponse[R]) }
