package scaffold

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type requestIDKey struct{}

// NewRequestID — ULID от момента t. DefaultEntropy безопасен из разных горутин.
func NewRequestID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// WithRequestID кладёт id в контекст (его ставит http middleware).
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom берёт id из контекста или создаёт новый.
func RequestIDFrom(ctx context.Context, now time.Time) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return NewRequestID(now)
}
