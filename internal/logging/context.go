package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Field names shared by every component that logs about a request.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldOrigin    = "origin"
	FieldWindowID  = "window_id"
)

// FromContext returns the logger carried by ctx, or a disabled one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags every line logged through ctx with the component name.
func WithComponent(ctx context.Context, component string) context.Context {
	return withStr(ctx, FieldComponent, component)
}

// WithRequest tags every line logged through ctx with the permission request
// it is about. Empty values are left out.
func WithRequest(ctx context.Context, requestID, origin, windowID string) context.Context {
	c := FromContext(ctx).With()
	for _, kv := range [][2]string{
		{FieldRequestID, requestID},
		{FieldOrigin, origin},
		{FieldWindowID, windowID},
	} {
		if kv[1] != "" {
			c = c.Str(kv[0], kv[1])
		}
	}
	return WithContext(ctx, c.Logger())
}

func withStr(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str(key, value).Logger())
}
