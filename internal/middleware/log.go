// Package middleware adds additional functionality of log, authentication around request-response cycle
package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key holding the request id
const RequestIDKey contextKey = "request_id"

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// CustomResponseWriter embeds http.ResponseWriter to override WriteHeader()
type CustomResponseWriter struct {
	Code int
	http.ResponseWriter
}

// WriteHeader overrides built-in WriteHeader to capture status code
func (crw *CustomResponseWriter) WriteHeader(statusCode int) {
	crw.Code = statusCode
	crw.ResponseWriter.WriteHeader(statusCode)
}

// LogMiddleware logs request and response
func LogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		startTime := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID))

		// set default values for ResponseWriter in case it is not invoked
		crw := &CustomResponseWriter{
			Code:           200,
			ResponseWriter: w,
		}

		next.ServeHTTP(crw, r)

		elapsedTime := time.Since(startTime).Round(time.Millisecond)
		code := crw.Code
		level := "[INFO]"
		if code >= 400 {
			level = "[ERROR]"
		}

		log.Printf("%s %s %s %s %d %v", level, requestID, r.Method, r.URL.Path, code, elapsedTime)

	})
}

// RequestID returns the id assigned by LogMiddleware, or "" outside of it
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
