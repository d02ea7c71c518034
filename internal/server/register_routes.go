package server

import (
	"net/http"

	"prover-node-mgr/internal/node"
	"prover-node-mgr/internal/server/nodes"
)

func RegisterNodeRoutes(mux *http.ServeMux, mgr *node.Manager) {
	mux.HandleFunc("/v1/node/create", nodes.CreateHandler(mgr))
	mux.HandleFunc("/v1/node/list", nodes.ListHandler(mgr))
	mux.HandleFunc("/v1/node/remove", nodes.RemoveHandler(mgr))
	mux.HandleFunc("/v1/node/logs", nodes.LogsHandler(mgr))
}
