// Package bridge owns one price lookup end to end: session lifecycle, ticker
// normalization, request submission, event polling, and error collapsing.
package bridge

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"pricebridge/internal/blp"
	"pricebridge/internal/logger"
	"pricebridge/internal/metrics"
	"pricebridge/internal/ticker"
)

const defaultPollTimeout = 5 * time.Second

// Result is the outcome of one lookup. Exactly one of Price/Err is normally
// set; Ticker is the provider symbol actually used, when one was derived.
// All provider-side failures collapse into the single Err string.
type Result struct {
	Price  *float64
	Ticker string
	Err    string
}

// SessionFactory produces a fresh session per lookup. Tests substitute mocks
// through it.
type SessionFactory func(blp.SessionOptions) blp.Session

// Bridge performs synchronous price lookups against the provider. Each call
// opens its own session; sessions are never shared or reused, so a Bridge is
// safe for concurrent use.
type Bridge struct {
	opts        blp.SessionOptions
	pollTimeout time.Duration
	newSession  SessionFactory
	log         *logrus.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithPollTimeout sets the per-poll event bound.
func WithPollTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.pollTimeout = d
		}
	}
}

// WithSessionFactory sets the session constructor.
func WithSessionFactory(f SessionFactory) Option {
	return func(b *Bridge) { b.newSession = f }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Logger) Option {
	return func(b *Bridge) { b.log = l }
}

// New creates a Bridge for the given provider endpoint.
func New(opts blp.SessionOptions, options ...Option) *Bridge {
	b := &Bridge{
		opts:        opts,
		pollTimeout: defaultPollTimeout,
		newSession: func(o blp.SessionOptions) blp.Session {
			return blp.NewTCPSession(o)
		},
		log: logger.GetLogger(),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// lookupState drives the polling loop: it stays in statePolling until one of
// the four terminal triggers fires (timeout event, recorded price or error,
// end-of-response-stream event, or an event-stream failure).
type lookupState int

const (
	statePolling lookupState = iota
	stateCompleted
)

// Lookup resolves the latest traded price for a raw ticker input.
//
// The session is closed exactly once on every exit path; a panic anywhere in
// the flow is recovered here, converted into the result's error string, and
// the price cleared. There is no retry and no cancellation: a lookup runs to
// completion or timeout.
func (b *Bridge) Lookup(raw string) (res Result) {
	start := time.Now()
	metrics.LookupsTotal.Inc()
	defer func() {
		if r := recover(); r != nil {
			b.log.WithField("panic", r).WithField("ticker", raw).Error("lookup panicked")
			metrics.LookupErrors.WithLabelValues("panic").Inc()
			res.Price = nil
			res.Err = fmt.Sprintf("exception while getting price for %s: %v", raw, r)
		}
		metrics.LookupDuration.Observe(time.Since(start).Seconds())
	}()

	fail := func(stage, format string, args ...any) {
		res.Err = fmt.Sprintf(format, args...)
		metrics.LookupErrors.WithLabelValues(stage).Inc()
		b.log.WithField("ticker", raw).Warn(res.Err)
	}

	sess := b.newSession(b.opts)
	// Session teardown must run on every exit path, including unwinding
	// panics, before the deferred recover above fires.
	defer func() {
		if err := sess.Stop(); err != nil {
			b.log.WithError(err).Warn("session stop failed")
		}
	}()

	if err := sess.Start(); err != nil {
		fail("session_start", "failed to start provider session: %v", err)
		return res
	}
	if err := sess.OpenService(blp.RefDataService); err != nil {
		fail("open_service", "failed to open %s service: %v", blp.RefDataService, err)
		return res
	}

	norm := ticker.Normalize(raw)
	res.Ticker = norm.Symbol
	b.log.WithFields(logrus.Fields{"ticker": raw, "symbol": norm.Symbol}).Info("looking up price")

	req := blp.NewReferenceDataRequest(norm.Symbol, blp.FieldLastPrice)
	corr, err := sess.SendRequest(req)
	if err != nil {
		fail("send_request", "failed to send request for %s: %v", norm.Symbol, err)
		return res
	}

	for state := statePolling; state == statePolling; {
		ev, err := sess.NextEvent(b.pollTimeout)
		if err != nil {
			fail("event_stream", "provider event stream failed for %s: %v", norm.Symbol, err)
			state = stateCompleted
			continue
		}
		if ev.Type == blp.EventTimeout {
			fail("timeout", "provider request timed out for %s", norm.Symbol)
			state = stateCompleted
			continue
		}

		b.log.WithFields(logrus.Fields{"event": ev.Type, "messages": len(ev.Messages)}).Debug("provider event")
		for _, msg := range ev.Messages {
			if msg.CorrelationID != corr {
				continue
			}
			b.scanMessage(msg, norm.Symbol, &res)
			// a recorded price or error is terminal; later messages in the
			// same event must not overwrite it
			if res.Price != nil || res.Err != "" {
				break
			}
		}

		if res.Price != nil || res.Err != "" {
			state = stateCompleted
			continue
		}
		// RESPONSE marks the end of the response stream.
		if ev.Type == blp.EventResponse {
			state = stateCompleted
		}
	}

	return res
}

// scanMessage extracts a price or error from one correlated response message.
func (b *Bridge) scanMessage(msg blp.Message, symbol string, res *Result) {
	if msg.ResponseError != nil {
		res.Err = fmt.Sprintf("response error for %s: %s", symbol, msg.ResponseError.Message)
		metrics.LookupErrors.WithLabelValues("response_error").Inc()
		return
	}
	for _, sd := range msg.SecurityData {
		if len(sd.FieldExceptions) > 0 {
			fe := sd.FieldExceptions[0]
			res.Err = fmt.Sprintf("field error for %s (%s): %s", sd.Security, fe.FieldID, fe.ErrorInfo.Message)
			metrics.LookupErrors.WithLabelValues("field_error").Inc()
			continue
		}
		if sd.SecurityError != nil {
			res.Err = fmt.Sprintf("security error for %s: %s", sd.Security, sd.SecurityError.Message)
			metrics.LookupErrors.WithLabelValues("security_error").Inc()
			continue
		}
		v, ok := sd.FieldData[blp.FieldLastPrice]
		switch {
		case !ok:
			res.Err = fmt.Sprintf("%s field not found for %s", blp.FieldLastPrice, symbol)
			metrics.LookupErrors.WithLabelValues("field_missing").Inc()
		case v == nil:
			res.Err = fmt.Sprintf("%s is null for %s", blp.FieldLastPrice, symbol)
			metrics.LookupErrors.WithLabelValues("null_value").Inc()
		default:
			price := *v
			res.Price = &price
			b.log.WithFields(logrus.Fields{"symbol": symbol, "price": price}).Info("price found")
		}
		// first record with field data (or a terminal field outcome) ends the scan
		break
	}
}
