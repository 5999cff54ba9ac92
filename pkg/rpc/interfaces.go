package rpc

import (
	"context"
	"encoding/json"
)

// Client captures the LCD calls the chain connection needs.
type Client interface {
	SmartQuery(ctx context.Context, contract string, msg any) (json.RawMessage, error)
	ContractInfo(ctx context.Context, contract string) (*ContractInfo, error)
	NodeInfo(ctx context.Context) (*NodeInfo, error)
	LatestHeight(ctx context.Context) (uint64, error)
}

// Factory produces RPC clients for a given set of endpoints.
type Factory interface {
	NewClient(endpoints []string) Client
}

type httpFactory struct {
	opts Opts
}

// NewHTTPFactory returns a factory that builds HTTP clients with shared defaults.
func NewHTTPFactory(opts Opts) Factory {
	return &httpFactory{opts: opts}
}

func (f *httpFactory) NewClient(endpoints []string) Client {
	o := f.opts
	o.Endpoints = endpoints
	return NewHTTPWithOpts(o)
}
