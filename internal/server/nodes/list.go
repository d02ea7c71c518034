package nodes

import (
	"net/http"

	"prover-node-mgr/internal/common/response"
	"prover-node-mgr/internal/node"
)

func ListHandler(mgr *node.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := mgr.ListNodes(r.Context())
		if err != nil {
			response.WriteResponse(w, http.StatusInternalServerError, err)
			return
		}

		response.WriteResponse(w, http.StatusOK, map[string]interface{}{
			"nodes": infos,
			"count": len(infos),
		})
	}
}
