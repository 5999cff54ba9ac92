package dao

// Empty is the parameter object of argument-less queries; it encodes as {}.
type Empty struct{}

// PageArgs are the start_after/limit arguments of address-keyed listings.
type PageArgs struct {
	StartAfter *string `json:"start_after,omitempty"`
	Limit      *uint32 `json:"limit,omitempty"`
}

// ProposalPageArgs are the arguments of list_proposals, keyed by proposal id.
type ProposalPageArgs struct {
	StartAfter *uint64 `json:"start_after,omitempty"`
	Limit      *uint64 `json:"limit,omitempty"`
}

// GetItemArgs selects one entry of the DAO item map.
type GetItemArgs struct {
	Key string `json:"key"`
}

// AddressArgs carries a member address.
type AddressArgs struct {
	Address string `json:"address"`
}

// PowerArgs queries voting power of an address. A nil Height encodes as null: current height.
type PowerArgs struct {
	Address string  `json:"address"`
	Height  *uint64 `json:"height"`
}

// TotalPowerArgs queries total voting power. A nil Height encodes as null: current height.
type TotalPowerArgs struct {
	Height *uint64 `json:"height"`
}

// QueryMsg is the smart query envelope. Exactly one field is set; its JSON name is the query name.
type QueryMsg struct {
	Admin                 *Empty            `json:"admin,omitempty"`
	AdminNomination       *Empty            `json:"admin_nomination,omitempty"`
	Config                *Empty            `json:"config,omitempty"`
	Cw20Balances          *PageArgs         `json:"cw20_balances,omitempty"`
	Cw20TokenList         *PageArgs         `json:"cw20_token_list,omitempty"`
	Cw721TokenList        *PageArgs         `json:"cw721_token_list,omitempty"`
	DumpState             *Empty            `json:"dump_state,omitempty"`
	GetItem               *GetItemArgs      `json:"get_item,omitempty"`
	ListItems             *PageArgs         `json:"list_items,omitempty"`
	Info                  *Empty            `json:"info,omitempty"`
	ProposalModules       *PageArgs         `json:"proposal_modules,omitempty"`
	ActiveProposalModules *PageArgs         `json:"active_proposal_modules,omitempty"`
	ProposalModuleCount   *Empty            `json:"proposal_module_count,omitempty"`
	PauseInfo             *Empty            `json:"pause_info,omitempty"`
	VotingModule          *Empty            `json:"voting_module,omitempty"`
	ListSubDaos           *PageArgs         `json:"list_sub_daos,omitempty"`
	DaoURI                *Empty            `json:"dao_u_r_i,omitempty"`
	VotingPowerAtHeight   *PowerArgs        `json:"voting_power_at_height,omitempty"`
	TotalPowerAtHeight    *TotalPowerArgs   `json:"total_power_at_height,omitempty"`
	GetStakedAmount       *AddressArgs      `json:"get_staked_amount,omitempty"`
	ListProposals         *ProposalPageArgs `json:"list_proposals,omitempty"`
}

func limit32(n int) *uint32 {
	v := uint32(n)
	return &v
}

func limit64(n int) *uint64 {
	v := uint64(n)
	return &v
}
