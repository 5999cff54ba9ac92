package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pagedao/daoquery/app/query/types"
)

type Controller struct {
	App *types.App
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App: app,
	}
}

// WithCORS allows browser frontends on any origin to call the read-only API.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodOptions)

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter returns a new router with all the routes defined in this package.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(c.instrument)

	r.Handle("/health", http.HandlerFunc(c.HandleHealth)).Methods("GET")
	r.Handle("/metrics", c.App.Metrics.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/dao-data", c.HandleDAOData).Methods("GET")
	api.HandleFunc("/proposals", c.HandleProposals).Methods("GET")
	api.HandleFunc("/voting-power", c.HandleVotingPower).Methods("GET")
	api.HandleFunc("/staked-amount", c.HandleStakedAmount).Methods("GET")
	api.HandleFunc("/list_sub_daos", c.HandleListSubDAOs).Methods("GET")

	for _, p := range passthroughs {
		api.HandleFunc(p.path, c.passthroughHandler(p)).Methods("GET")
	}

	return r, nil
}

// statusRecorder remembers the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// instrument records request count and latency per route template.
func (c *Controller) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		c.App.Metrics.ObserveRequest(route, rec.status, time.Since(start))
	})
}
