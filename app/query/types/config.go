package types

import (
	"errors"
	"time"

	"github.com/pagedao/daoquery/pkg/chain"
	"github.com/pagedao/daoquery/pkg/rpc"
	"github.com/pagedao/daoquery/pkg/utils"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Endpoints      []string
	Contract       string
	ChainID        string
	Addr           string
	VerifyContract bool
	RPCTimeout     time.Duration
	QueryTimeout   time.Duration
	RPS            int
	Burst          int
	PageSize       int
	MaxPages       int
	Workers        int
	ConnectRetries int
	ProbeSpec      string
}

// LoadConfig reads the configuration. Missing required values are reported by Validate.
func LoadConfig() Config {
	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":"+utils.Env("PORT", "3001"))

	return Config{
		Endpoints:      utils.Dedup(utils.EnvList("RPC_ENDPOINT")),
		Contract:       utils.Env("PAGE_DAO_CONTRACT", ""),
		ChainID:        utils.Env("CHAIN_ID", ""),
		Addr:           addr,
		VerifyContract: utils.EnvBool("VERIFY_CONTRACT", true),
		RPCTimeout:     utils.EnvDuration("RPC_TIMEOUT", 15*time.Second),
		QueryTimeout:   utils.EnvDuration("QUERY_TIMEOUT", 10*time.Second),
		RPS:            utils.EnvInt("RPC_RPS", 20),
		Burst:          utils.EnvInt("RPC_BURST", 40),
		PageSize:       utils.EnvInt("PAGE_SIZE", rpc.DefaultPageSize),
		MaxPages:       utils.EnvInt("MAX_PAGES", rpc.DefaultMaxPages),
		Workers:        utils.EnvInt("PROPOSAL_WORKERS", 4),
		ConnectRetries: utils.EnvInt("CONNECT_RETRIES", 1),
		ProbeSpec:      utils.Env("HEIGHT_PROBE_CRON", chain.DefaultProbeSpec),
	}
}

// Validate reports the first missing or unusable setting.
func (c Config) Validate() error {
	switch {
	case len(c.Endpoints) == 0:
		return errors.New("RPC_ENDPOINT is required")
	case c.Contract == "":
		return errors.New("PAGE_DAO_CONTRACT is required")
	case c.PageSize <= 0:
		return errors.New("PAGE_SIZE must be positive")
	case c.QueryTimeout <= 0:
		return errors.New("QUERY_TIMEOUT must be positive")
	}
	return nil
}
