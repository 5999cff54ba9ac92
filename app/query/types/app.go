package types

import (
	"context"
	"net/http"
	"time"

	"github.com/pagedao/daoquery/pkg/chain"
	"github.com/pagedao/daoquery/pkg/dao"
	"github.com/pagedao/daoquery/pkg/metrics"
	"go.uber.org/zap"
)

type App struct {
	Config Config
	// Chain owns the connection lifecycle of the LCD endpoint.
	Chain *chain.Client
	DAO   *dao.Service
	// Monitor probes every endpoint's latest height for /health.
	Monitor *chain.Monitor
	Metrics *metrics.Metrics
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
}

// Start serves HTTP while the chain connection is established in the background.
// Queries arriving before the handshake finished are answered with 503. A failed
// handshake is fatal.
func (a *App) Start(ctx context.Context) {
	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	go func() {
		if err := a.Chain.Connect(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			a.Logger.Fatal("Unable to connect to chain", zap.Error(err))
		}
	}()

	if a.Monitor != nil {
		a.Monitor.Start()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.Monitor != nil {
		a.Monitor.Stop()
	}

	_ = a.Server.Shutdown(shutdownCtx)
	a.DAO.Close()
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
