package binder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// SuccessMarker is the exact response body the server returns on success.
// Any other body, including surrounding whitespace or a JSON wrapper, is
// treated as an application failure.
const SuccessMarker = "success"

const formContentType = "application/x-www-form-urlencoded; charset=UTF-8"

// Binder issues delete and edit requests for page triggers.
type Binder struct {
	client    *http.Client
	baseURL   string
	header    http.Header
	notifier  Notifier
	navigator Navigator
	log       *zap.Logger

	handlers map[TriggerKind]Handler
	inflight sync.WaitGroup
}

// Option configures a Binder.
type Option func(*Binder)

// WithHTTPClient sets the client used for requests. The default is
// http.DefaultClient, which has no timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Binder) { b.client = c }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(b *Binder) { b.log = l }
}

// WithHeader adds a header sent with every request, e.g. a session cookie.
func WithHeader(key, value string) Option {
	return func(b *Binder) { b.header.Add(key, value) }
}

// New returns a Binder sending requests to baseURL. Failures go to n and
// successful deletes navigate through nav.
func New(baseURL string, n Notifier, nav Navigator, opts ...Option) *Binder {
	b := &Binder{
		client:    http.DefaultClient,
		baseURL:   strings.TrimRight(baseURL, "/"),
		header:    make(http.Header),
		notifier:  n,
		navigator: nav,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.handlers = b.Bind()
	return b
}

// Delete issues DELETE on ref. On the success marker it navigates to "/",
// otherwise it notifies and returns a *Failure.
func (b *Binder) Delete(ctx context.Context, ref Ref) error {
	status, body, err := b.do(ctx, http.MethodDelete, ref, nil)
	if f := b.transportFailure(http.MethodDelete, ref, status, body, err); f != nil {
		return f
	}
	if body != SuccessMarker {
		return b.fail(&Failure{
			Kind:   ApplicationFailure,
			Method: http.MethodDelete,
			Ref:    ref,
			Status: status,
			Text:   DeleteFailedMessage(ref.Kind),
		})
	}
	b.navigator.Navigate("/")
	return nil
}

// Edit issues PUT on ref with the payload form-encoded. The result is
// discarded on success.
func (b *Binder) Edit(ctx context.Context, ref Ref, p Payload) error {
	status, body, err := b.do(ctx, http.MethodPut, ref, p)
	if f := b.transportFailure(http.MethodPut, ref, status, body, err); f != nil {
		return f
	}
	if body != SuccessMarker {
		return b.fail(&Failure{
			Kind:   ApplicationFailure,
			Method: http.MethodPut,
			Ref:    ref,
			Status: status,
			Text:   UpdateFailedMessage(ref.Kind),
		})
	}
	return nil
}

// transportFailure returns a notified *Failure for a network error or a
// non-2xx status, and nil otherwise. A network error has no response body,
// so the notification is empty and the cause is kept in Failure.Err.
func (b *Binder) transportFailure(method string, ref Ref, status int, body string, err error) error {
	switch {
	case err != nil:
		return b.fail(&Failure{Kind: TransportFailure, Method: method, Ref: ref, Err: err})
	case status < 200 || status > 299:
		return b.fail(&Failure{Kind: TransportFailure, Method: method, Ref: ref, Status: status, Text: body})
	}
	return nil
}

func (b *Binder) fail(f *Failure) error {
	b.log.Debug("action failed",
		zap.String("method", f.Method),
		zap.String("path", f.Ref.Path()),
		zap.Stringer("kind", f.Kind),
		zap.Int("status", f.Status),
		zap.Error(f.Err),
	)
	b.notifier.Notify(f.Text)
	return f
}

func (b *Binder) do(ctx context.Context, method string, ref Ref, p Payload) (int, string, error) {
	var body io.Reader
	if p != nil {
		body = strings.NewReader(p.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+ref.Path(), body)
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	for k, vs := range b.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if p != nil {
		req.Header.Set("Content-Type", formContentType)
	}

	b.log.Debug("sending request", zap.String("method", method), zap.String("url", req.URL.String()))

	resp, err := b.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, string(data), nil
}
