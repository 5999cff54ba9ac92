package query

import (
	"context"

	"github.com/pagedao/daoquery/app/query/types"
	"github.com/pagedao/daoquery/pkg/chain"
	"github.com/pagedao/daoquery/pkg/dao"
	"github.com/pagedao/daoquery/pkg/logging"
	"github.com/pagedao/daoquery/pkg/metrics"
	"github.com/pagedao/daoquery/pkg/retry"
	"github.com/pagedao/daoquery/pkg/rpc"
	"go.uber.org/zap"
)

// Initialize initializes the application. The chain connection is not opened here; App.Start does that.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr'
		panic(err)
	}

	cfg := types.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	m := metrics.New("daoquery")

	factory := rpc.NewHTTPFactory(rpc.Opts{
		Timeout: cfg.RPCTimeout,
		RPS:     cfg.RPS,
		Burst:   cfg.Burst,
	})

	connectRetry := retry.Once()
	if cfg.ConnectRetries > 1 {
		connectRetry = retry.DefaultConfig()
		connectRetry.MaxRetries = cfg.ConnectRetries
	}

	chainClient := chain.New(factory.NewClient(cfg.Endpoints), chain.Config{
		Endpoint:       rpc.EndpointHost(cfg.Endpoints[0]),
		Contract:       cfg.Contract,
		ChainID:        cfg.ChainID,
		VerifyContract: cfg.VerifyContract,
		QueryTimeout:   cfg.QueryTimeout,
		Retry:          connectRetry,
	}, logger, m)

	service := dao.NewService(chainClient, dao.Options{
		Contract: cfg.Contract,
		PageSize: cfg.PageSize,
		MaxPages: cfg.MaxPages,
		Workers:  cfg.Workers,
	}, logger, m)

	monitor, err := chain.NewMonitor(ctx, factory, cfg.Endpoints, cfg.ProbeSpec, logger, m)
	if err != nil {
		logger.Fatal("Unable to schedule height probe", zap.String("spec", cfg.ProbeSpec), zap.Error(err))
	}

	hosts := make([]string, len(cfg.Endpoints))
	for i, ep := range cfg.Endpoints {
		hosts[i] = chain.EndpointLabel(ep, i)
	}
	logger.Info("Configuration loaded",
		zap.Strings("endpoints", hosts),
		zap.String("contract", cfg.Contract),
		zap.String("chainId", cfg.ChainID),
		zap.Int("pageSize", cfg.PageSize))

	return &types.App{
		Config:  cfg,
		Chain:   chainClient,
		DAO:     service,
		Monitor: monitor,
		Metrics: m,
		Logger:  logger,
	}
}
