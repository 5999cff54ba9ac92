package controller

import (
	"net/http"

	"github.com/pagedao/daoquery/pkg/chain"
)

type healthResponse struct {
	Status    string                 `json:"status"`
	State     string                 `json:"state"`
	Network   string                 `json:"network,omitempty"`
	Contract  string                 `json:"contract"`
	Error     string                 `json:"error,omitempty"`
	Endpoints map[string]chain.Probe `json:"endpoints"`
}

// HandleHealth reports readiness of the chain connection and the last probed height of every endpoint.
func (c *Controller) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		State:     c.App.Chain.State().String(),
		Network:   c.App.Chain.Network(),
		Contract:  c.App.Chain.Contract(),
		Endpoints: map[string]chain.Probe{},
	}
	if c.App.Monitor != nil {
		resp.Endpoints = c.App.Monitor.Snapshot()
	}

	status := http.StatusOK
	if !c.App.Chain.Ready() {
		status = http.StatusServiceUnavailable
		resp.Status = "unavailable"
		if err := c.App.Chain.Err(); err != nil {
			resp.Error = err.Error()
		}
	}
	writeJSON(w, status, resp)
}
