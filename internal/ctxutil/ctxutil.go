package ctxutil

import (
	"context"
	"strconv"
	"time"
)

type key int

const (
	keyOperatorID key = iota
	keyRequestID
)

func WithOperatorID(ctx context.Context, operatorID uint) context.Context {
	return context.WithValue(ctx, keyOperatorID, operatorID)
}

func OperatorID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(keyOperatorID).(uint)
	return id, ok
}

// PerformedBy names the actor of ctx for audit entries, or fallback when no operator is attached.
func PerformedBy(ctx context.Context, fallback string) string {
	if id, ok := OperatorID(ctx); ok {
		return "operator:" + strconv.FormatUint(uint64(id), 10)
	}

	return fallback
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keyRequestID).(string)
	return id, ok && id != ""
}

var DefaultStoreTimeout = 10 * time.Second

// WithStoreTimeout bounds a single store or provider call, keeping a shorter parent deadline.
func WithStoreTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok && time.Until(dl) < DefaultStoreTimeout {
		return context.WithDeadline(parent, dl)
	}

	return context.WithTimeout(parent, DefaultStoreTimeout)
}
