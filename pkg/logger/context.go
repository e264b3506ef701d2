package logger

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/pkg/ctxval"
	"go.uber.org/zap"
)

type fieldKey string

const (
	KeyRequestID   fieldKey = "request_id"
	KeyCartSession fieldKey = "cart_session"
)

var contextKeys = []fieldKey{KeyRequestID, KeyCartSession}

// ctxLogger skips one extra frame so callers, not this file, show up.
func ctxLogger() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return root.WithOptions(zap.AddCallerSkip(1)).Sugar()
}

// WithField stores a log field in the context value bag. The context must
// have been wrapped by ctxval.Wrap, otherwise this is a no-op.
func WithField(ctx context.Context, key fieldKey, value string) {
	ctxval.Set(ctx, key, value)
}

func Field(ctx context.Context, key fieldKey) string {
	v, _ := ctxval.Get[fieldKey, string](ctx, key)
	return v
}

func withContext(ctx context.Context, kv []any) []any {
	if ctx == nil {
		return kv
	}
	out := make([]any, 0, len(kv)+len(contextKeys)*2)
	for _, k := range contextKeys {
		if v := Field(ctx, k); v != "" {
			out = append(out, string(k), v)
		}
	}
	return append(out, kv...)
}

func Debugw(ctx context.Context, msg string, kv ...any) {
	ctxLogger().Debugw(msg, withContext(ctx, kv)...)
}

func Infow(ctx context.Context, msg string, kv ...any) {
	ctxLogger().Infow(msg, withContext(ctx, kv)...)
}

func Warnw(ctx context.Context, msg string, kv ...any) {
	ctxLogger().Warnw(msg, withContext(ctx, kv)...)
}

func Errorw(ctx context.Context, msg string, kv ...any) {
	ctxLogger().Errorw(msg, withContext(ctx, kv)...)
}
