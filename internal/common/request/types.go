package request

type CreateNodeRequest struct {
	NodeID string `json:"node_id"`
}

type RemoveNodeRequest struct {
	NodeID string `json:"node_id"`
}
