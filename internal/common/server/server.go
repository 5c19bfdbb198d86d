package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// connections and runs hooks in order.
func Run(ctx context.Context, server *http.Server, log *logger.Logger, hooks ...ShutdownHook) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("messenger listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down messenger...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()

	server.SetKeepAlivesEnabled(false)
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("messenger forced to shutdown: %v", err)
	}

	drainCtx, drainCancel := context.WithTimeout(shutdownCtx, constants.DrainTimeout)
	defer drainCancel()

	for i, hook := range hooks {
		if err := hook(drainCtx); err != nil {
			log.Errorf("shutdown hook %d failed: %v", i, err)
		}
	}

	log.Info("messenger stopped gracefully")
	return nil
}
