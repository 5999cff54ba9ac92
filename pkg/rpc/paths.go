package rpc

// Cosmos LCD (REST gateway) paths used by the client.
const (
	// %s contract address, %s base64url encoded query message
	smartQueryPath   = "/cosmwasm/wasm/v1/contract/%s/smart/%s"
	contractInfoPath = "/cosmwasm/wasm/v1/contract/%s"

	nodeInfoPath    = "/cosmos/base/tendermint/v1beta1/node_info"
	latestBlockPath = "/cosmos/base/tendermint/v1beta1/blocks/latest"
)
