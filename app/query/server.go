package query

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pagedao/daoquery/app/query/controller"
	"github.com/pagedao/daoquery/app/query/types"
)

// NewServer builds the router and attaches the http.Server to the app.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	app.Server = &http.Server{Addr: app.Config.Addr, Handler: controller.WithCORS(router)}
	app.Logger.Info("Starting server", zap.String("addr", app.Config.Addr))

	return nil
}
