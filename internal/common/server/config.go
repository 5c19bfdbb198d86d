package server

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/messenger/backend/internal/common/config"
	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
)

type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// OptionsFrom derives listener settings from the application config. The
// write deadline always outlasts REQUEST_TIMEOUT by ServerWriteGrace so a
// timed-out handler can still deliver its error response.
func OptionsFrom(cfg config.Config) Options {
	return Options{
		Addr:              ":" + cfg.HTTPPort,
		ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
		ReadTimeout:       max(constants.ServerReadTimeout, cfg.RequestTimeout),
		WriteTimeout:      max(constants.ServerWriteTimeout, cfg.RequestTimeout+constants.ServerWriteGrace),
		IdleTimeout:       constants.ServerIdleTimeout,
	}
}

func New(opts Options, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
	}
}
