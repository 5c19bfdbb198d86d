package http

import (
	"net/http"

	"github.com/AlibekovAA/messenger/backend/internal/common/config"
	"github.com/AlibekovAA/messenger/backend/internal/common/crypto"
	"github.com/AlibekovAA/messenger/backend/internal/common/httpmetrics"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
)

// BuildBaseHandler wraps the application mux with the middleware every
// request passes through, outermost first. Body size and handler deadline
// come from cfg.
func BuildBaseHandler(log *logger.Logger, cfg config.Config, handler http.Handler) http.Handler {
	collector := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware(crypto.NewUUIDGenerator())
	maxRequestSize := MaxRequestSizeMiddleware(cfg.MaxRequestSize, NewErrorHandler(log))
	timeout := WithTimeout(cfg.RequestTimeout)

	return SecurityHeadersMiddleware(traceID(recovery(maxRequestSize(collector.Wrap(timeout(handler))))))
}
