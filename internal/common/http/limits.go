package http

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/messenger/backend/internal/common/errors"
)

// MaxRequestSizeMiddleware refuses bodies declared larger than maxBytes and
// caps the rest with http.MaxBytesReader. A chunked body that crosses the cap
// surfaces from DecodeAndValidate as ErrRequestTooLarge.
func MaxRequestSizeMiddleware(maxBytes int64, errs *ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				errs.HandleError(w, r, commonerrors.ErrRequestTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
