package core

import "context"

type contextKey string

const ctxKeyIPAddress contextKey = "audit_ip"

// ContextWithIPAddress adds the client IP to the context so registry
// saves can record it in the audit trail.
func ContextWithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKeyIPAddress, ip)
}

// IPAddressFromContext extracts the client IP, or "" when absent.
func IPAddressFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyIPAddress).(string); ok {
		return v
	}
	return ""
}
