package controller

import (
	"net/http"

	"github.com/pagedao/daoquery/pkg/dao"
)

// passthrough forwards one query to the configured DAO contract and relays the answer unchanged.
type passthrough struct {
	path  string
	query string
	build func(r *http.Request) (dao.QueryMsg, error)
}

func fixed(msg dao.QueryMsg) func(*http.Request) (dao.QueryMsg, error) {
	return func(*http.Request) (dao.QueryMsg, error) { return msg, nil }
}

var passthroughs = []passthrough{
	{"/dao/config", "config", fixed(dao.QueryMsg{Config: &dao.Empty{}})},
	{"/dao/proposal-modules", "proposal_modules", fixed(dao.QueryMsg{ProposalModules: &dao.PageArgs{}})},
	{"/dao/voting-module", "voting_module", fixed(dao.QueryMsg{VotingModule: &dao.Empty{}})},
	{"/dao/pause-info", "pause_info", fixed(dao.QueryMsg{PauseInfo: &dao.Empty{}})},
	{"/list_proposal_modules", "proposal_modules", fixed(dao.QueryMsg{ProposalModules: &dao.PageArgs{}})},
	{"/admin", "admin", fixed(dao.QueryMsg{Admin: &dao.Empty{}})},
	{"/admin_nomination", "admin_nomination", fixed(dao.QueryMsg{AdminNomination: &dao.Empty{}})},
	{"/cw20_balances", "cw20_balances", fixed(dao.QueryMsg{Cw20Balances: &dao.PageArgs{}})},
	{"/cw20_token_list", "cw20_token_list", fixed(dao.QueryMsg{Cw20TokenList: &dao.PageArgs{}})},
	{"/cw721_token_list", "cw721_token_list", fixed(dao.QueryMsg{Cw721TokenList: &dao.PageArgs{}})},
	{"/dump_state", "dump_state", fixed(dao.QueryMsg{DumpState: &dao.Empty{}})},
	{"/get_item", "get_item", func(r *http.Request) (dao.QueryMsg, error) {
		key, err := requireParam(r, "key")
		if err != nil {
			return dao.QueryMsg{}, err
		}
		return dao.QueryMsg{GetItem: &dao.GetItemArgs{Key: key}}, nil
	}},
	{"/list_items", "list_items", fixed(dao.QueryMsg{ListItems: &dao.PageArgs{}})},
	{"/info", "info", fixed(dao.QueryMsg{Info: &dao.Empty{}})},
	{"/active_proposal_modules", "active_proposal_modules", fixed(dao.QueryMsg{ActiveProposalModules: &dao.PageArgs{}})},
	{"/proposal_module_count", "proposal_module_count", fixed(dao.QueryMsg{ProposalModuleCount: &dao.Empty{}})},
	{"/dao_u_r_i", "dao_u_r_i", fixed(dao.QueryMsg{DaoURI: &dao.Empty{}})},
	{"/voting_power_at_height", "voting_power_at_height", func(r *http.Request) (dao.QueryMsg, error) {
		address, err := requireParam(r, "address")
		if err != nil {
			return dao.QueryMsg{}, err
		}
		height, err := heightParam(r)
		if err != nil {
			return dao.QueryMsg{}, err
		}
		return dao.QueryMsg{VotingPowerAtHeight: &dao.PowerArgs{Address: address, Height: height}}, nil
	}},
	{"/total_power_at_height", "total_power_at_height", func(r *http.Request) (dao.QueryMsg, error) {
		height, err := heightParam(r)
		if err != nil {
			return dao.QueryMsg{}, err
		}
		return dao.QueryMsg{TotalPowerAtHeight: &dao.TotalPowerArgs{Height: height}}, nil
	}},
}

func (c *Controller) passthroughHandler(p passthrough) http.HandlerFunc {
	msg := "failed to query " + p.query
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := p.build(r)
		if err != nil {
			c.fail(w, r, msg, err)
			return
		}

		data, err := c.App.DAO.Query(r.Context(), q)
		if err != nil {
			c.fail(w, r, msg, err)
			return
		}
		writeJSON(w, http.StatusOK, data)
	}
}
