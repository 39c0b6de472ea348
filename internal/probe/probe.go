// Package probe runs XML checks: it fetches a document, extracts node values
// and turns them into a status and message for a monitoring framework.
package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/usestring/xmlprobe/internal/cache"
	"github.com/usestring/xmlprobe/pkg/client"
	"github.com/usestring/xmlprobe/pkg/contenttype"
	"github.com/usestring/xmlprobe/pkg/evaluate"
	"github.com/usestring/xmlprobe/pkg/xpathquery"
)

// Fetcher retrieves the document at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*client.Document, error)
}

// Clock supplies the current time for age checks.
type Clock func() time.Time

// DefaultMaxFetchTime bounds a shared document fetch when no WithMaxFetchTime
// option is given.
const DefaultMaxFetchTime = 2 * time.Minute

// Probe runs checks. It is safe for concurrent use.
type Probe struct {
	fetcher Fetcher
	cache   *cache.DocumentCache
	clock   Clock
	flights singleflight.Group
	// maxFetch bounds a fetch shared by concurrent checks of one URL. Each
	// check still gives up at its own deadline.
	maxFetch time.Duration
}

// Option configures a Probe.
type Option func(*Probe)

// WithCache serves repeated fetches of a URL from c while they are fresh.
func WithCache(c *cache.DocumentCache) Option {
	return func(p *Probe) {
		p.cache = c
	}
}

// WithClock replaces the wall clock used by age checks.
func WithClock(c Clock) Option {
	return func(p *Probe) {
		p.clock = c
	}
}

// WithMaxFetchTime bounds how long a shared fetch may run, whatever the
// timeouts of the checks waiting on it.
func WithMaxFetchTime(d time.Duration) Option {
	return func(p *Probe) {
		if d > 0 {
			p.maxFetch = d
		}
	}
}

// New creates a Probe that fetches documents with f.
func New(f Fetcher, opts ...Option) *Probe {
	p := &Probe{
		fetcher:  f,
		clock:    time.Now,
		maxFetch: DefaultMaxFetchTime,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check runs one check. Every failure is folded into the result; Check never
// returns an error.
func (p *Probe) Check(ctx context.Context, req Request) Result {
	start := time.Now()
	res := Result{
		CheckID: uuid.NewString(),
		Name:    req.Name,
		URL:     req.URL,
		XPath:   req.XPath,
	}

	verdict, values, err := p.run(ctx, req, &res)
	res.DurationMs = time.Since(start).Milliseconds()
	res.Values = values

	if err != nil {
		kind := evaluate.KindOf(err)
		if kind == "" {
			kind = evaluate.KindTransportFailure
		}
		res.Kind = kind
		res.Status = statusForError(kind)
		res.Message = err.Error()
		if prefixed(kind) {
			res.Message = req.XPath + ": " + res.Message
		}
		slog.Warn("check failed",
			slog.String("check_id", res.CheckID),
			slog.String("url", req.URL),
			slog.String("xpath", req.XPath),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", res.DurationMs),
		)
		return res
	}

	res.Status = verdict.Status
	res.Message = verdict.Message
	res.Offending = verdict.Offending
	if !verdict.Passed() && res.Mode != ModeExists {
		res.Message = req.XPath + ": " + res.Message
	}

	slog.Info("check completed",
		slog.String("check_id", res.CheckID),
		slog.String("url", req.URL),
		slog.String("xpath", req.XPath),
		slog.String("mode", string(res.Mode)),
		slog.String("status", res.Status.String()),
		slog.Int("values", len(values)),
		slog.Int64("duration_ms", res.DurationMs),
	)
	return res
}

func (p *Probe) run(ctx context.Context, req Request, res *Result) (evaluate.Verdict, xpathquery.Values, error) {
	mode, err := req.Mode()
	if err != nil {
		return evaluate.Verdict{}, nil, err
	}
	res.Mode = mode

	doc, err := p.Document(ctx, req.URL, req.Timeout)
	if err != nil {
		return evaluate.Verdict{}, nil, err
	}

	if mode == ModeExists && req.XPath == "" {
		if _, err := xpathquery.Exists(doc.Body, doc.ContentType); err != nil {
			return evaluate.Verdict{}, nil, err
		}
		return evaluate.Verdict{Status: evaluate.StatusOK, Message: "XML document is well-formed"}, nil, nil
	}

	values, err := xpathquery.Extract(doc.Body, doc.ContentType, req.XPath)
	if err != nil {
		return evaluate.Verdict{}, nil, err
	}

	var v evaluate.Verdict
	switch mode {
	case ModeExists:
		v = existence(values, req.XPath)
	case ModeEqual:
		v, err = evaluate.CheckEqual(values, req.OK)
	case ModeThreshold:
		v, err = thresholds(values, req.Warning, req.Critical)
	case ModeAge:
		v, err = evaluate.CheckAge(values, req.AgeHours, req.timeFormat(), p.clock())
	}
	return v, values, err
}

// existence reports a found node as OK when it carries a value, WARNING when
// every matched node is empty.
func existence(values xpathquery.Values, xpath string) evaluate.Verdict {
	if values.Defined() {
		return evaluate.Verdict{
			Status:  evaluate.StatusOK,
			Message: fmt.Sprintf("Node with XPath '%s' found", xpath),
		}
	}
	return evaluate.Verdict{
		Status:  evaluate.StatusWarning,
		Message: fmt.Sprintf("Node with XPath '%s' found but not defined", xpath),
	}
}

// thresholds evaluates the critical range, then the warning range; the first
// non-OK verdict wins. Both thresholds are validated before either verdict is used.
func thresholds(values xpathquery.Values, warning, critical string) (evaluate.Verdict, error) {
	var crit, warn evaluate.Verdict
	var err error

	if critical != "" {
		if crit, err = evaluate.CheckRange(values, critical, evaluate.SeverityCritical); err != nil {
			return evaluate.Verdict{}, err
		}
	}
	if warning != "" {
		if warn, err = evaluate.CheckRange(values, warning, evaluate.SeverityWarning); err != nil {
			return evaluate.Verdict{}, err
		}
	}

	switch {
	case critical != "" && !crit.Passed():
		return crit, nil
	case warning != "" && !warn.Passed():
		return warn, nil
	}
	return evaluate.Verdict{Status: evaluate.StatusOK, Message: "All the node(s) values are within thresholds"}, nil
}

// Document fetches the document at url, bounded by timeout when it is
// positive. Fetches go through the cache and concurrent fetches of one URL are
// collapsed. Failures are TransportFailure errors.
func (p *Probe) Document(ctx context.Context, url string, timeout time.Duration) (*client.Document, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	doc, err := p.fetch(ctx, url)
	if err != nil {
		return nil, transportError(ctx, err, timeout)
	}
	if cat := contenttype.Classify(doc.ContentType); !cat.Parseable() {
		slog.Warn("document is not served as XML",
			slog.String("url", url),
			slog.String("content_type", doc.ContentType),
		)
	}
	return doc, nil
}

// fetch collapses concurrent fetches of url into one. The shared fetch is
// detached from every caller's context and bounded by maxFetch; each caller
// waits for it only until its own ctx is done.
func (p *Probe) fetch(ctx context.Context, url string) (*client.Document, error) {
	if p.cache != nil {
		if doc, ok := p.cache.Get(url); ok {
			slog.Debug("document cache hit", slog.String("url", url))
			return doc, nil
		}
	}

	shared := context.WithoutCancel(ctx)
	ch := p.flights.DoChan(url, func() (any, error) {
		fctx, cancel := context.WithTimeout(shared, p.maxFetch)
		defer cancel()

		doc, err := p.fetcher.Fetch(fctx, url)
		if err != nil {
			return nil, err
		}
		if p.cache != nil {
			p.cache.Put(url, doc)
		}
		return doc, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			slog.Debug("document fetch shared", slog.String("url", url))
		}
		return r.Val.(*client.Document), nil
	}
}

// transportError describes a failed fetch. The timeout wording is used only
// when the caller's own deadline expired.
func transportError(ctx context.Context, err error, timeout time.Duration) error {
	var se *client.StatusError
	switch {
	case timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded):
		return evaluate.Wrap(evaluate.KindTransportFailure, err,
			fmt.Sprintf("Unable to fetch xml: timed out after %s", timeout))
	case errors.As(err, &se):
		return evaluate.Wrap(evaluate.KindTransportFailure, err,
			fmt.Sprintf("Unable to fetch xml: %s", se))
	}
	return evaluate.Wrap(evaluate.KindTransportFailure, err,
		fmt.Sprintf("Unable to fetch xml: %v", err))
}
