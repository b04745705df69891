// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package evcb

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Caller runs HTTP requests asynchronously and hands each outcome to a
// Callback. The zero value uses http.DefaultClient with no limit.
type Caller struct {
	// Client performs the requests. Nil means http.DefaultClient.
	Client *http.Client
	// Limit caps the number of calls in flight; Call blocks while the
	// cap is reached. Zero or negative means no limit. Read once, on
	// the first Call.
	Limit int

	once sync.Once
	g    errgroup.Group
}

func (c *Caller) group() *errgroup.Group {
	c.once.Do(func() {
		if c.Limit > 0 {
			c.g.SetLimit(c.Limit)
		}
	})
	return &c.g
}

func (c *Caller) client() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// Call sends req with ctx on a new goroutine and delivers exactly one
// outcome to cb:
//   - 2xx: Success with the body decoded as JSON into S (an empty body
//     leaves S at its zero value) and the response status and headers;
//   - other statuses: Failure with an *HTTPError holding the body;
//   - no response or unreadable body: Failure with a *NetworkError.
//
// A 2xx body that does not decode is delivered as a Failure wrapping
// the decode error.
func Call[S, E any](c *Caller, ctx context.Context, req *http.Request, cb *Callback[S, E]) {
	client := c.client()
	c.group().Go(func() error {
		deliver(client, req.WithContext(ctx), cb)
		return nil
	})
}

// Wait blocks until every call started by Call has delivered its outcome.
func (c *Caller) Wait() {
	_ = c.g.Wait()
}

func deliver[S, E any](client *http.Client, req *http.Request, cb *Callback[S, E]) {
	resp, err := client.Do(req)
	if err != nil {
		_ = cb.Failure(&NetworkError{Err: err})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		_ = cb.Failure(&NetworkError{Err: errors.Wrap(err, "read response body")})
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = cb.Failure(&HTTPError{Status: resp.StatusCode, Header: resp.Header, Body: body})
		return
	}

	var v S
	if len(bytes.TrimSpace(body)) > 0 {
		if err := jsonv2.Unmarshal(body, &v); err != nil {
			_ = cb.Failure(errors.Wrapf(err, "evcb: decode %d response body", resp.StatusCode))
			return
		}
	}
	_ = cb.Success(v, &Meta{Status: resp.StatusCode, Header: resp.Header})
}
