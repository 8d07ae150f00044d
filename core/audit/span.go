// Copyright 2025, the tscat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"fmt"
	"net/http"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Span represents an HTTP request in flight.
type Span struct {
	// only these fields are set automatically
	task     *trace.Task
	start    time.Time
	duration time.Duration
	metric   *servertiming.Metric

	// Name labels the Server-Timing metric and the trace task, for example
	// the route pattern.
	Name       string
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Size       int
	Error      error
}

// Begin starts timing the span. If ctx carries a Server-Timing header, a
// metric for the span is added to it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http."+span.Name)
	if timing := servertiming.FromContext(ctx); timing != nil {
		span.metric = timing.NewMetric(span.Name)
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixNano())/float64(time.Millisecond), 'f', -1, 64),
		}
	}

	return ctx
}

// End stops timing the span. Calling End more than once has no effect.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()

	if span.metric != nil {
		span.metric.Duration = span.duration
	}

	span.task = nil
}

// Duration returns the time between Begin and End.
func (span *Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span with sys=http. Server errors are logged at warn
// level, everything else at debug level.
func (span *Span) Log() {
	level := zerolog.DebugLevel
	if span.StatusCode >= http.StatusInternalServerError {
		level = zerolog.WarnLevel
	}

	log.WithLevel(level).
		Str("sys", "http").
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration).
		Str("request_id", span.RequestID).
		AnErr("error", span.Error).
		Send()
}

const bytesInMB = 1 << 20

// humanizeSize renders x bytes with a binary K, M or G suffix and two
// decimals. Sizes below 1K are printed as is.
func humanizeSize(x int) string {
	if x < 1<<10 {
		return strconv.Itoa(x)
	}

	v := float64(x)
	unit := 'B'

	for _, u := range "KMG" {
		if v < 1<<10 {
			break
		}

		v /= 1 << 10
		unit = u
	}

	return fmt.Sprintf("%.2f%c", v, unit)
}
