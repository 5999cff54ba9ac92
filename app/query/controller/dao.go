package controller

import (
	"encoding/json"
	"net/http"
)

// HandleDAOData returns the info of the configured DAO together with all of its sub-DAOs.
// address identifies the caller's wallet and is required, but the queries always target the DAO.
func (c *Controller) HandleDAOData(w http.ResponseWriter, r *http.Request) {
	if _, err := requireParam(r, "address"); err != nil {
		c.fail(w, r, "failed to fetch DAO data", err)
		return
	}

	data, err := c.App.DAO.DAOData(r.Context(), c.App.DAO.Contract())
	if err != nil {
		c.fail(w, r, "failed to fetch DAO data", err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// HandleProposals lists the proposals of every proposal module. Without address the configured DAO is used.
func (c *Controller) HandleProposals(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		address = c.App.DAO.Contract()
	}

	proposals, err := c.App.DAO.Proposals(r.Context(), address)
	if err != nil {
		c.fail(w, r, "failed to fetch proposals", err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

func (c *Controller) HandleVotingPower(w http.ResponseWriter, r *http.Request) {
	address, err := requireParam(r, "address")
	if err != nil {
		c.fail(w, r, "failed to fetch voting power", err)
		return
	}
	daoID, err := requireParam(r, "daoId")
	if err != nil {
		c.fail(w, r, "failed to fetch voting power", err)
		return
	}
	height, err := heightParam(r)
	if err != nil {
		c.fail(w, r, "failed to fetch voting power", err)
		return
	}

	power, err := c.App.DAO.VotingPower(r.Context(), daoID, address, height)
	if err != nil {
		c.fail(w, r, "failed to fetch voting power", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"votingPower": power})
}

func (c *Controller) HandleStakedAmount(w http.ResponseWriter, r *http.Request) {
	address, err := requireParam(r, "address")
	if err != nil {
		c.fail(w, r, "failed to fetch staked amount", err)
		return
	}
	daoID, err := requireParam(r, "daoId")
	if err != nil {
		c.fail(w, r, "failed to fetch staked amount", err)
		return
	}

	amount, err := c.App.DAO.StakedAmount(r.Context(), daoID, address)
	if err != nil {
		c.fail(w, r, "failed to fetch staked amount", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]json.RawMessage{"stakedAmount": amount})
}

// HandleListSubDAOs returns the full sub-DAO list of the configured DAO.
func (c *Controller) HandleListSubDAOs(w http.ResponseWriter, r *http.Request) {
	subs, err := c.App.DAO.SubDAOs(r.Context(), c.App.DAO.Contract())
	if err != nil {
		c.fail(w, r, "failed to list sub-DAOs", err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}
