// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package evcb turns the outcome of an asynchronous call into events
// posted on a bus, flags set, and shared handlers run, all declared
// up front with a builder.
//
// A [Callback] has three stages: onCreate fires when it is built, then
// exactly one of onSuccess or onError fires when the call completes.
// Status-code stages fire before either terminal stage when the
// outcome carries a matching HTTP status.
//
// # Architecture
//
//   - Configuration: [Builder] accumulates [Actions] per stage; [Builder.Build] freezes a copy into a [Callback].
//   - Sessions: events marked [ThisSessionOnly] are dropped when the [SessionSource] reports a different session than at build time. [BetweenSessions] events always fire.
//   - Firing: each stage is an effect program on [code.hybscloud.com/kont] made of [SetFlag], [Fill] and [Post] operations. [Exec] runs it on a [Bus]; [Trace] lists its operations without applying them.
//   - Ordering: within a stage, flags are stored first, then session-only events, then multi-session events, then result events.
//   - Errors: failures are converted to a typed error value by an [ErrorDecoder]. A [*NetworkError] or an undecodable failure leaves it absent and suppresses result events.
//
// # Buses
//
//   - [Router]: synchronous, type-routed delivery on the posting goroutine.
//   - [Loop]: marshals posts from any goroutine onto one delivery goroutine through a lock-free SPSC queue from [code.hybscloud.com/lfq].
//
// # Example
//
//	var router evcb.Router
//	evcb.Subscribe(&router, func(e *evcb.Response[*User]) { show(e.Value) })
//
//	var loading evcb.Flag
//	b := evcb.NewBuilder[*User, *APIError](evcb.Config{Bus: &router}, evcb.JSONError[*APIError]())
//	b.OnCreate().SetFlags(true, &loading)
//	b.OnSuccess().SetFlags(false, &loading).PostNewResults(evcb.ThisSessionOnly, evcb.NewResponse[*User])
//	b.OnError().SetFlags(false, &loading)
//	cb, err := b.Build()
//	if err != nil {
//		return err
//	}
//	evcb.Call(&caller, ctx, req, cb)
package evcb
