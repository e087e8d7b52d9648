// Package request carries per-call request ids on contexts so one API call
// can be followed across client logs, traces and server logs.
package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderName is the header the id is sent in
const HeaderName = "X-Request-ID"

type contextKey string

const idContextKey contextKey = "request_id"

// WithID returns a context carrying id
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, idContextKey, id)
}

// IDFromContext returns the id on ctx, or "" when there is none
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(idContextKey).(string)
	return id
}

// Ensure returns ctx unchanged if it already carries an id, otherwise a child
// context with a fresh one
func Ensure(ctx context.Context) (context.Context, string) {
	if id := IDFromContext(ctx); strings.TrimSpace(id) != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithID(ctx, id), id
}

// SetHeader copies the id on ctx, if any, into h
func SetHeader(ctx context.Context, h http.Header) {
	if id := IDFromContext(ctx); id != "" {
		h.Set(HeaderName, id)
	}
}
