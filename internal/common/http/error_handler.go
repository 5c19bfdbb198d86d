package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
	"github.com/AlibekovAA/messenger/backend/internal/common/httpmetrics"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
	"github.com/AlibekovAA/messenger/backend/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	if domainErr, ok := commonerrors.AsDomainError(err); ok && domainErr.Category() != commonerrors.CategoryInternal {
		h.handleDomainError(w, r, domainErr)
		return
	}

	h.log.WithFields(ctx, logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}).Errorf("%s %s failed", r.Method, r.URL.Path)

	code := CodeInternal
	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		code = domainErr.Code()
		metrics.DomainErrorsTotal.WithLabelValues(
			string(domainErr.Category()),
			domainErr.Code(),
			strconv.Itoa(http.StatusInternalServerError),
		).Inc()
	}

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, http.StatusInternalServerError, code, "internal server error", traceID)
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError) {
	ctx := r.Context()
	traceID := TraceIDFromContext(ctx)

	domainErr := err
	if traceID != "" && err.TraceID() == "" {
		domainErr = err.WithTraceID(traceID)
	}

	status := domainErr.HTTPStatus()

	if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, logger.Fields{
			"error_code": domainErr.Code(),
			"category":   string(domainErr.Category()),
			"status":     status,
			"action":     "domain_error",
		}).Debugf("domain error: %s", domainErr.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, status, domainErr.Code(), domainErr.Message(), domainErr.TraceID())
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(constants.TraceIDKey).(string)
	return traceID
}
