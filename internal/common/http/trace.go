package http

import (
	"context"
	"net/http"

	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	"github.com/AlibekovAA/messenger/backend/internal/common/crypto"
)

const traceIDHeader = "X-Trace-ID"

// TraceIDMiddleware keeps an incoming X-Trace-ID or mints a new one, echoes it
// in the response and stores it where logger.WithFields finds it.
func TraceIDMiddleware(ids crypto.IDGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceIDHeader)
			if traceID == "" || len(traceID) > 128 {
				traceID = ids.NewID()
			}

			w.Header().Set(traceIDHeader, traceID)

			ctx := context.WithValue(r.Context(), constants.TraceIDKey, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
