package nodes

import (
	"encoding/json"
	"net/http"

	"prover-node-mgr/internal/common/request"
	"prover-node-mgr/internal/common/response"
	"prover-node-mgr/internal/node"
	clog "prover-node-mgr/utils/log"
)

// RemoveHandler removes a node's container and log file. Removing a node
// that never existed succeeds; removal is idempotent end to end.
func RemoveHandler(mgr *node.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request.RemoveNodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			clog.Error("Invalid remove request", "err", err)
			response.WriteResponse(w, http.StatusBadRequest, "Invalid request")
			return
		}

		if err := node.ValidateID(req.NodeID); err != nil {
			response.WriteResponse(w, http.StatusBadRequest, err)
			return
		}

		if err := mgr.RemoveNode(r.Context(), req.NodeID); err != nil {
			response.WriteResponse(w, http.StatusInternalServerError, err)
			return
		}

		response.WriteResponse(w, http.StatusOK, map[string]string{"node_id": req.NodeID})
	}
}
