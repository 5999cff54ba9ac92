package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// SmartQuery runs a CosmWasm smart query against contract and returns the "data" member verbatim.
// msg must marshal to a single-key object naming the query, e.g. {"info": {}}; the contract
// itself decides whether it understands it.
func (c *HTTPClient) SmartQuery(ctx context.Context, contract string, msg any) (json.RawMessage, error) {
	name, bz, err := encodeQuery(msg)
	if err != nil {
		return nil, &QueryError{Contract: contract, Query: name, Err: err}
	}
	if contract == "" {
		return nil, &QueryError{Query: name, Err: errors.New("empty contract address")}
	}

	path := fmt.Sprintf(smartQueryPath, url.PathEscape(contract), base64.URLEncoding.EncodeToString(bz))
	var out smartQueryResponse
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, queryErr(contract, name, err)
	}
	if len(out.Data) == 0 {
		return json.RawMessage("null"), nil
	}
	return out.Data, nil
}

// ContractInfo fetches contract metadata. Unknown addresses come back as a *RemoteError.
func (c *HTTPClient) ContractInfo(ctx context.Context, contract string) (*ContractInfo, error) {
	if contract == "" {
		return nil, errors.New("empty contract address")
	}
	var info ContractInfo
	if err := c.getJSON(ctx, fmt.Sprintf(contractInfoPath, url.PathEscape(contract)), &info); err != nil {
		return nil, err
	}
	if info.ContractInfo.CodeID == "" {
		return nil, fmt.Errorf("contract %s: empty contract_info", contract)
	}
	return &info, nil
}

// NodeInfo returns the node identity, including the network (chain id) it serves.
func (c *HTTPClient) NodeInfo(ctx context.Context) (*NodeInfo, error) {
	var info NodeInfo
	if err := c.getJSON(ctx, nodeInfoPath, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// LatestHeight returns the height of the newest block the node has.
func (c *HTTPClient) LatestHeight(ctx context.Context) (uint64, error) {
	var blk latestBlock
	if err := c.getJSON(ctx, latestBlockPath, &blk); err != nil {
		return 0, err
	}
	h, err := strconv.ParseUint(blk.Block.Header.Height, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse latest height %q: %w", blk.Block.Header.Height, err)
	}
	return h, nil
}

// queryErr turns a transport or gateway failure into a *QueryError.
func queryErr(contract, name string, err error) error {
	qe := &QueryError{Contract: contract, Query: name, Err: err}
	var remote *RemoteError
	if errors.As(err, &remote) {
		qe.Status = remote.Status
		qe.Message = remote.Message
	}
	qe.Timeout = IsTimeout(err)
	return qe
}

// IsTimeout reports whether err came from a context deadline or a transport timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
