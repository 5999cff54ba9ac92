package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pagedao/daoquery/pkg/metrics"
	"github.com/pagedao/daoquery/pkg/retry"
	"github.com/pagedao/daoquery/pkg/rpc"
	"go.uber.org/zap"
)

// State is the lifecycle state of the chain connection.
type State int32

const (
	StateUnconnected State = iota
	StateConnecting
	StateReady
	StateFailed
)

var allStates = []string{"unconnected", "connecting", "ready", "failed"}

func (s State) String() string {
	if int(s) < len(allStates) {
		return allStates[s]
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

const defaultQueryTimeout = 10 * time.Second

// Config describes the connection to establish.
type Config struct {
	// Endpoint is a display name for errors and logs (the LCD URL list).
	Endpoint string
	// Contract is the DAO core contract. Verified at connect time when VerifyContract is set.
	Contract string
	// ChainID, when set, must match the network the node reports.
	ChainID        string
	VerifyContract bool
	// QueryTimeout bounds every smart query.
	QueryTimeout time.Duration
	// Retry controls handshake attempts while Connecting. Zero value means a single attempt.
	Retry retry.Config
}

// Client owns the single chain connection shared by all request handlers.
// It moves Unconnected -> Connecting -> Ready|Failed exactly once; there is no reconnect.
type Client struct {
	rpc     rpc.Client
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	state   State
	err     error
	network string
	done    chan struct{}
}

// New returns an unconnected client over the given LCD client.
func New(rc rpc.Client, cfg Config, logger *zap.Logger, m *metrics.Metrics) *Client {
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = defaultQueryTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		rpc:     rc,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		done:    make(chan struct{}),
	}
	m.SetConnectionState(StateUnconnected.String(), allStates)
	return c
}

// Connect performs the handshake. Only the first call does any work; every other caller,
// concurrent or later, waits for that attempt and gets the same result.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUnconnected {
		done := c.done
		c.mu.Unlock()
		select {
		case <-done:
			return c.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.state = StateConnecting
	c.mu.Unlock()
	c.metrics.SetConnectionState(StateConnecting.String(), allStates)

	c.logger.Info("Connecting to chain",
		zap.String("endpoint", c.cfg.Endpoint),
		zap.String("contract", c.cfg.Contract),
		zap.String("chainId", c.cfg.ChainID))

	var network string
	err := retry.WithBackoff(ctx, c.cfg.Retry, c.logger, "chain handshake", func() error {
		var hsErr error
		network, hsErr = c.handshake(ctx)
		return hsErr
	})

	c.mu.Lock()
	if err != nil {
		var connErr *rpc.ConnectionError
		if !errors.As(err, &connErr) {
			err = &rpc.ConnectionError{Endpoint: c.cfg.Endpoint, Stage: "handshake", Err: err}
		}
		c.state = StateFailed
		c.err = err
	} else {
		c.state = StateReady
		c.network = network
	}
	state := c.state
	close(c.done)
	c.mu.Unlock()

	c.metrics.SetConnectionState(state.String(), allStates)
	if err != nil {
		c.logger.Error("Chain connection failed", zap.String("endpoint", c.cfg.Endpoint), zap.Error(err))
		return err
	}
	c.logger.Info("Chain client ready", zap.String("network", network))
	return nil
}

// handshake checks the node answers, serves the expected chain and hosts the contract.
func (c *Client) handshake(ctx context.Context) (string, error) {
	info, err := c.rpc.NodeInfo(ctx)
	if err != nil {
		return "", &rpc.ConnectionError{Endpoint: c.cfg.Endpoint, Stage: "handshake", Err: err}
	}
	network := info.DefaultNodeInfo.Network
	if c.cfg.ChainID != "" && network != c.cfg.ChainID {
		return "", &rpc.ConnectionError{
			Endpoint: c.cfg.Endpoint,
			Stage:    "chain-id",
			Err:      fmt.Errorf("node serves %q, expected %q", network, c.cfg.ChainID),
		}
	}
	if c.cfg.VerifyContract {
		if _, err := c.rpc.ContractInfo(ctx, c.cfg.Contract); err != nil {
			return "", &rpc.ConnectionError{
				Endpoint: c.cfg.Endpoint,
				Stage:    "verify-contract",
				Err:      fmt.Errorf("contract %s: %w", c.cfg.Contract, err),
			}
		}
	}
	return network, nil
}

// Query runs a smart query. Before the client is Ready it fails with a *rpc.ConnectionError
// wrapping rpc.ErrNotReady; remote failures come back as *rpc.QueryError.
func (c *Client) Query(ctx context.Context, contract string, msg any) (json.RawMessage, error) {
	if state, cause := c.snapshot(); state != StateReady {
		err := fmt.Errorf("%w (state %s)", rpc.ErrNotReady, state)
		if cause != nil {
			err = fmt.Errorf("%w: %v", rpc.ErrNotReady, cause)
		}
		return nil, &rpc.ConnectionError{Endpoint: c.cfg.Endpoint, Stage: "ready", Err: err}
	}

	bz, err := json.Marshal(msg)
	if err != nil {
		return nil, &rpc.QueryError{Contract: contract, Err: err}
	}
	name, err := rpc.QueryName(bz)
	if err != nil {
		return nil, &rpc.QueryError{Contract: contract, Err: err}
	}
	if contract == "" {
		return nil, &rpc.QueryError{Query: name, Err: errors.New("empty contract address")}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.QueryTimeout)
	defer cancel()

	start := time.Now()
	data, err := c.rpc.SmartQuery(ctx, contract, json.RawMessage(bz))
	elapsed := time.Since(start)
	if err != nil {
		var qe *rpc.QueryError
		if !errors.As(err, &qe) {
			qe = &rpc.QueryError{Contract: contract, Query: name, Err: err}
		}
		if rpc.IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			qe.Timeout = true
		}
		outcome := "error"
		if qe.Timeout {
			outcome = "timeout"
		}
		c.metrics.ObserveQuery(name, outcome, elapsed)
		c.logger.Debug("Smart query failed",
			zap.String("contract", contract),
			zap.String("query", name),
			zap.Duration("elapsed", elapsed),
			zap.Error(qe))
		return nil, qe
	}
	c.metrics.ObserveQuery(name, "ok", elapsed)
	if data == nil {
		data = json.RawMessage("null")
	}
	return data, nil
}

// WaitReady blocks until the connect attempt finished or ctx is done.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) snapshot() (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.err
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	s, _ := c.snapshot()
	return s
}

// Ready reports whether queries can be served.
func (c *Client) Ready() bool {
	return c.State() == StateReady
}

// Err returns the connect failure, if any.
func (c *Client) Err() error {
	_, err := c.snapshot()
	return err
}

// Network returns the chain id reported by the node once Ready.
func (c *Client) Network() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.network
}

// Contract returns the configured DAO core contract.
func (c *Client) Contract() string {
	return c.cfg.Contract
}
