package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/pagedao/daoquery/pkg/metrics"
	"github.com/pagedao/daoquery/pkg/rpc"
	"go.uber.org/zap"
)

// Querier runs one smart query. *chain.Client implements it.
type Querier interface {
	Query(ctx context.Context, contract string, msg any) (json.RawMessage, error)
}

// Options configures a Service.
type Options struct {
	// Contract is the DAO core contract used when a route does not name one.
	Contract string
	PageSize int
	MaxPages int
	// Workers bounds how many proposal modules are listed concurrently.
	Workers int
}

// Service exposes the DAO queries served over HTTP.
type Service struct {
	chain    Querier
	contract string
	pageSize int
	maxPages int
	pool     pond.Pool
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// DAOData is the combined answer of the dao-data route.
type DAOData struct {
	DaoInfo json.RawMessage   `json:"daoInfo"`
	SubDAOs []json.RawMessage `json:"subDAOs"`
}

// NewService returns a service querying through q.
func NewService(q Querier, opts Options, logger *zap.Logger, m *metrics.Metrics) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = rpc.DefaultPageSize
	}
	if opts.MaxPages < 0 {
		opts.MaxPages = 0
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		chain:    q,
		contract: opts.Contract,
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		pool:     pond.NewPool(opts.Workers),
		logger:   logger,
		metrics:  m,
	}
}

// Close stops the worker pool.
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// Contract returns the configured DAO core contract.
func (s *Service) Contract() string {
	return s.contract
}

// Query forwards msg to the configured DAO contract and returns the raw answer.
func (s *Service) Query(ctx context.Context, msg QueryMsg) (json.RawMessage, error) {
	return s.chain.Query(ctx, s.contract, msg)
}

// QueryContract forwards msg to an arbitrary contract.
func (s *Service) QueryContract(ctx context.Context, contract string, msg QueryMsg) (json.RawMessage, error) {
	return s.chain.Query(ctx, contract, msg)
}

// DAOData returns the info of dao together with its full sub-DAO list.
func (s *Service) DAOData(ctx context.Context, dao string) (*DAOData, error) {
	info, err := s.chain.Query(ctx, dao, QueryMsg{Info: &Empty{}})
	if err != nil {
		return nil, fmt.Errorf("dao info: %w", err)
	}
	subs, err := s.SubDAOs(ctx, dao)
	if err != nil {
		return nil, err
	}
	return &DAOData{DaoInfo: info, SubDAOs: subs}, nil
}

// SubDAOs lists every sub-DAO registered on dao, in contract order.
func (s *Service) SubDAOs(ctx context.Context, dao string) ([]json.RawMessage, error) {
	const query = "list_sub_daos"
	pager := rpc.Pager[json.RawMessage, string]{
		Query:    query,
		PageSize: s.pageSize,
		MaxPages: s.maxPages,
		Fetch: func(ctx context.Context, after *string, limit int) ([]json.RawMessage, error) {
			s.metrics.IncPages(query)
			raw, err := s.chain.Query(ctx, dao, QueryMsg{ListSubDaos: &PageArgs{StartAfter: after, Limit: limit32(limit)}})
			if err != nil {
				return nil, err
			}
			return rpc.DecodeList[json.RawMessage](query, raw)
		},
		Cursor: addressCursor(query, "addr"),
	}
	return s.collect(ctx, query, dao, pager.Collect)
}

// ProposalModules lists every proposal module of dao.
func (s *Service) ProposalModules(ctx context.Context, dao string) ([]json.RawMessage, error) {
	const query = "proposal_modules"
	pager := rpc.Pager[json.RawMessage, string]{
		Query:    query,
		PageSize: s.pageSize,
		MaxPages: s.maxPages,
		Fetch: func(ctx context.Context, after *string, limit int) ([]json.RawMessage, error) {
			s.metrics.IncPages(query)
			raw, err := s.chain.Query(ctx, dao, QueryMsg{ProposalModules: &PageArgs{StartAfter: after, Limit: limit32(limit)}})
			if err != nil {
				return nil, err
			}
			return rpc.DecodeList[json.RawMessage](query, raw)
		},
		Cursor: addressCursor(query, "address"),
	}
	return s.collect(ctx, query, dao, pager.Collect)
}

// ModuleProposals lists every proposal of one proposal module.
func (s *Service) ModuleProposals(ctx context.Context, module string) ([]json.RawMessage, error) {
	const query = "list_proposals"
	pager := rpc.Pager[json.RawMessage, uint64]{
		Query:    query,
		PageSize: s.pageSize,
		MaxPages: s.maxPages,
		Fetch: func(ctx context.Context, after *uint64, limit int) ([]json.RawMessage, error) {
			s.metrics.IncPages(query)
			raw, err := s.chain.Query(ctx, module, QueryMsg{ListProposals: &ProposalPageArgs{StartAfter: after, Limit: limit64(limit)}})
			if err != nil {
				return nil, err
			}
			field, err := rpc.DecodeField(query, raw, "proposals")
			if err != nil {
				return nil, err
			}
			return rpc.DecodeList[json.RawMessage](query, field)
		},
		Cursor: func(last json.RawMessage) (uint64, error) {
			var p struct {
				ID *uint64 `json:"id"`
			}
			if err := json.Unmarshal(last, &p); err != nil || p.ID == nil {
				return 0, &rpc.ShapeError{Query: query, Expected: "proposal with numeric id", Got: rpc.JSONKind(last)}
			}
			return *p.ID, nil
		},
	}
	return s.collect(ctx, query, module, pager.Collect)
}

// Proposals lists the proposals of every proposal module of dao. Modules are listed
// concurrently but the result keeps module order, then proposal order within a module.
func (s *Service) Proposals(ctx context.Context, dao string) ([]json.RawMessage, error) {
	modules, err := s.ProposalModules(ctx, dao)
	if err != nil {
		return nil, err
	}

	addrs := make([]string, len(modules))
	for i, m := range modules {
		addr, err := moduleAddress(m)
		if err != nil {
			return nil, err
		}
		addrs[i] = addr
	}

	results := make([][]json.RawMessage, len(addrs))

	// the first failing module cancels the group context, so the others stop early
	group := s.pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, addr := range addrs {
		group.SubmitErr(func() error {
			items, err := s.ModuleProposals(groupCtx, addr)
			if err != nil {
				return fmt.Errorf("proposal module %s: %w", addr, err)
			}
			results[i] = items
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
			s.logger.Warn("proposal listing failed", zap.String("dao", dao), zap.Error(err))
		}
		return nil, err
	}

	all := []json.RawMessage{}
	for i := range addrs {
		all = append(all, results[i]...)
	}
	return all, nil
}

// VotingPower queries voting_power_at_height on contract. A nil height means the current height.
func (s *Service) VotingPower(ctx context.Context, contract, address string, height *uint64) (json.RawMessage, error) {
	return s.chain.Query(ctx, contract, QueryMsg{VotingPowerAtHeight: &PowerArgs{Address: address, Height: height}})
}

// TotalPower queries total_power_at_height on contract. A nil height means the current height.
func (s *Service) TotalPower(ctx context.Context, contract string, height *uint64) (json.RawMessage, error) {
	return s.chain.Query(ctx, contract, QueryMsg{TotalPowerAtHeight: &TotalPowerArgs{Height: height}})
}

// StakedAmount queries get_staked_amount on contract.
func (s *Service) StakedAmount(ctx context.Context, contract, address string) (json.RawMessage, error) {
	return s.chain.Query(ctx, contract, QueryMsg{GetStakedAmount: &AddressArgs{Address: address}})
}

func (s *Service) collect(ctx context.Context, query, contract string, run func(context.Context) ([]json.RawMessage, error)) ([]json.RawMessage, error) {
	items, err := run(ctx)
	if err != nil {
		s.logger.Debug("listing failed",
			zap.String("query", query),
			zap.String("contract", contract),
			zap.Error(err))
		return nil, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// addressCursor reads the resume address from the last item of a page. Items that are bare
// strings (older contract versions list plain addresses) are their own cursor.
func addressCursor(query, field string) func(json.RawMessage) (string, error) {
	return func(last json.RawMessage) (string, error) {
		var s string
		if json.Unmarshal(last, &s) == nil && s != "" {
			return s, nil
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(last, &m); err == nil {
			if err := json.Unmarshal(m[field], &s); err == nil && s != "" {
				return s, nil
			}
		}
		return "", &rpc.ShapeError{Query: query, Expected: fmt.Sprintf("item with %q", field), Got: rpc.JSONKind(last)}
	}
}

func moduleAddress(item json.RawMessage) (string, error) {
	return addressCursor("proposal_modules", "address")(item)
}
