package obs

import (
	"context"
	"log"
	"time"

	"waypoint-route-service/internal/platform/metrics"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID returns a child context carrying the request ID used in timing logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs and records the duration of a named operation.
// Usage: defer obs.Time(ctx, "op")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			metrics.OperationDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		metrics.OperationDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}
