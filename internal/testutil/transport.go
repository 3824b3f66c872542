// Package testutil holds fakes shared by package tests.
// This is a test helper and should not be used in production code.
package testutil

import (
	"context"
	"encoding/json"
	"sync"
)

// Call records one request made through a FakeTransport.
type Call struct {
	Method string
	URL    string
	Body   any
}

// Responder answers a request. Returning a non-nil payload JSON-encodes it into out.
type Responder func(ctx context.Context, call Call) (payload any, err error)

// FakeTransport records every request and answers them with Respond.
// A nil Respond answers every request with no payload.
type FakeTransport struct {
	Respond Responder

	mu    sync.Mutex
	calls []Call
}

// Calls returns the recorded requests in order.
func (f *FakeTransport) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *FakeTransport) Get(ctx context.Context, url string, out any) error {
	return f.do(ctx, Call{Method: "GET", URL: url}, out)
}

func (f *FakeTransport) Post(ctx context.Context, url string, body, out any) error {
	return f.do(ctx, Call{Method: "POST", URL: url, Body: body}, out)
}

func (f *FakeTransport) Put(ctx context.Context, url string, body, out any) error {
	return f.do(ctx, Call{Method: "PUT", URL: url, Body: body}, out)
}

func (f *FakeTransport) Delete(ctx context.Context, url string, out any) error {
	return f.do(ctx, Call{Method: "DELETE", URL: url}, out)
}

func (f *FakeTransport) do(ctx context.Context, call Call, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.Respond == nil {
		return nil
	}
	payload, err := f.Respond(ctx, call)
	if err != nil {
		return err
	}
	if payload == nil || out == nil {
		return nil
	}
	// Go through JSON like the real transport does
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
