package rpc

import "encoding/json"

// NodeInfo is the subset of the /node_info answer used for the connection handshake.
type NodeInfo struct {
	DefaultNodeInfo struct {
		Network string `json:"network"`
		Moniker string `json:"moniker"`
		Version string `json:"version"`
	} `json:"default_node_info"`
	ApplicationVersion struct {
		Name    string `json:"name"`
		AppName string `json:"app_name"`
		Version string `json:"version"`
	} `json:"application_version"`
}

// ContractInfo is the /cosmwasm/wasm/v1/contract/{address} answer.
type ContractInfo struct {
	Address      string `json:"address"`
	ContractInfo struct {
		CodeID  string `json:"code_id"`
		Creator string `json:"creator"`
		Admin   string `json:"admin"`
		Label   string `json:"label"`
	} `json:"contract_info"`
}

type latestBlock struct {
	Block struct {
		Header struct {
			ChainID string `json:"chain_id"`
			Height  string `json:"height"`
		} `json:"header"`
	} `json:"block"`
}

type smartQueryResponse struct {
	Data json.RawMessage `json:"data"`
}
