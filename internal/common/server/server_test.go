package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/messenger/backend/internal/common/config"
	"github.com/AlibekovAA/messenger/backend/internal/common/constants"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
)

func TestRun_ShutsDownOnCancel(t *testing.T) {
	srv := New(Options{Addr: "127.0.0.1:0"}, http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	hookCalled := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- Run(ctx, srv, logger.Nop(), func(context.Context) error {
			close(hookCalled)
			return nil
		})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-hookCalled:
	default:
		t.Fatal("shutdown hook not called")
	}
}

func TestOptionsFrom(t *testing.T) {
	opts := OptionsFrom(config.Config{HTTPPort: "9090", RequestTimeout: 5 * time.Second})
	assert.Equal(t, ":9090", opts.Addr)
	assert.Equal(t, constants.ServerWriteTimeout, opts.WriteTimeout)
	assert.Equal(t, constants.ServerReadTimeout, opts.ReadTimeout)

	slow := OptionsFrom(config.Config{HTTPPort: "9090", RequestTimeout: 2 * time.Minute})
	assert.Equal(t, 2*time.Minute+constants.ServerWriteGrace, slow.WriteTimeout)
	assert.Equal(t, 2*time.Minute, slow.ReadTimeout)
	assert.Greater(t, slow.WriteTimeout, slow.ReadTimeout)
}
