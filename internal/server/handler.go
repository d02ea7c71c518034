package server

import (
	"context"
	"errors"
	"net/http"

	"prover-node-mgr/internal/node"
	clog "prover-node-mgr/utils/log"
)

// StartHTTPServer serves the node control API until ctx is cancelled.
func StartHTTPServer(ctx context.Context, listen string, mgr *node.Manager) error {
	mux := http.NewServeMux()
	RegisterNodeRoutes(mux, mgr)

	srv := &http.Server{
		Addr:    listen,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	clog.Info("HTTP API listening", "addr", listen)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
