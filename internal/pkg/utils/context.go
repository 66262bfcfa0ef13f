package utils

import (
	"appointment-service/internal/pkg/constvars"
	"context"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetMessageID(ctx context.Context) string {
	if messageID, ok := ctx.Value(constvars.CONTEXT_MESSAGE_ID_KEY).(string); ok {
		return messageID
	}
	return ""
}

// WithMessageID tags a consumer context so downstream logs share the delivery id.
// The request id key carries it too, which keeps usecase logging uniform.
func WithMessageID(ctx context.Context, messageID string) context.Context {
	ctx = context.WithValue(ctx, constvars.CONTEXT_MESSAGE_ID_KEY, messageID)
	return context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, messageID)
}
