package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/stringanalyzer/internal/audit"
	"github.com/go-chi/chi/v5/middleware"
)

// withRequestMetadata adds client IP, User-Agent and request ID to context for audit logging.
func withRequestMetadata(r *http.Request) context.Context {
	ctx := audit.ContextWithIPAddress(r.Context(), clientIP(r))
	ctx = audit.ContextWithUserAgent(ctx, r.UserAgent())
	ctx = audit.ContextWithRequestID(ctx, middleware.GetReqID(r.Context()))
	return ctx
}

// clientIP strips the port from RemoteAddr, which TrustedRealIP has already resolved.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
