package nodes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"prover-node-mgr/internal/common/errs"
	"prover-node-mgr/internal/common/request"
	"prover-node-mgr/internal/common/response"
	"prover-node-mgr/internal/node"
	clog "prover-node-mgr/utils/log"
)

// CreateHandler creates (or re-creates, upsert semantics) a node. The
// response is only written after the liveness probe, so a failed launch
// surfaces the log tail in the error message.
func CreateHandler(mgr *node.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request.CreateNodeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			clog.Error("Invalid create request", "err", err)
			response.WriteResponse(w, http.StatusBadRequest, "Invalid request")
			return
		}

		if detail := validateCreateRequest(&req); !detail.OK() {
			clog.Error("Validation error", "err", detail.Message)
			response.WriteResponse(w, http.StatusBadRequest, detail.Message.Error())
			return
		}

		if err := mgr.CreateNode(r.Context(), req.NodeID); err != nil {
			response.WriteResponse(w, http.StatusInternalServerError, err)
			return
		}

		response.WriteResponse(w, http.StatusOK, map[string]string{"node_id": req.NodeID})
	}
}

func validateCreateRequest(req *request.CreateNodeRequest) errs.ErrorDetail {
	if req.NodeID == "" {
		return errs.ErrorDetail{
			Code:    errs.Invalid,
			Message: fmt.Errorf("node_id is required"),
		}
	}
	if err := node.ValidateID(req.NodeID); err != nil {
		return errs.ErrorDetail{
			Code:    errs.Invalid,
			Message: err,
		}
	}
	return errs.ErrorDetail{}
}
