package nodes

import (
	"net/http"
	"strconv"

	"prover-node-mgr/internal/common/response"
	"prover-node-mgr/internal/node"
)

const defaultLogTail = 100

// LogsHandler returns a fixed tail of the node's combined output. The API
// has no follow mode; indefinite streaming belongs to the console view.
func LogsHandler(mgr *node.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		nodeID := r.URL.Query().Get("node_id")
		if err := node.ValidateID(nodeID); err != nil {
			response.WriteResponse(w, http.StatusBadRequest, err)
			return
		}

		tail := defaultLogTail
		if v := r.URL.Query().Get("tail"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				response.WriteResponse(w, http.StatusBadRequest, "tail must be a positive integer")
				return
			}
			tail = n
		}

		logs, err := mgr.TailNodeLogs(r.Context(), nodeID, tail)
		if err != nil {
			response.WriteResponse(w, http.StatusInternalServerError, err)
			return
		}

		response.WriteResponse(w, http.StatusOK, map[string]string{
			"node_id": nodeID,
			"logs":    logs,
		})
	}
}
