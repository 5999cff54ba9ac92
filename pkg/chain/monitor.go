package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/pagedao/daoquery/pkg/metrics"
	"github.com/pagedao/daoquery/pkg/rpc"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultProbeSpec runs the height probe every 30 seconds (cron with a seconds field).
const DefaultProbeSpec = "*/30 * * * * *"

// Probe is the last observation of one endpoint.
type Probe struct {
	Height    uint64    `json:"height"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// Monitor periodically asks every LCD endpoint for its latest block height.
// It only observes; it never changes the connection state. Endpoints are reported by
// host only since provider URLs often carry API keys in the path or query.
type Monitor struct {
	targets []target
	probes  *xsync.Map[string, Probe]
	cron    *cron.Cron
	spec    string
	timeout time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewMonitor builds one single-endpoint client per endpoint and schedules the probe.
func NewMonitor(ctx context.Context, factory rpc.Factory, endpoints []string, spec string, logger *zap.Logger, m *metrics.Metrics) (*Monitor, error) {
	if spec == "" {
		spec = DefaultProbeSpec
	}
	mon := &Monitor{
		targets: make([]target, 0, len(endpoints)),
		probes:  xsync.NewMap[string, Probe](),
		spec:    spec,
		timeout: 10 * time.Second,
		logger:  logger,
		metrics: m,
	}
	seen := make(map[string]bool, len(endpoints))
	for i, ep := range endpoints {
		name := EndpointLabel(ep, i)
		if seen[name] {
			name = fmt.Sprintf("%s#%d", name, i)
		}
		seen[name] = true
		mon.targets = append(mon.targets, target{name: name, client: factory.NewClient([]string{ep})})
	}

	// Seconds field, optional
	mon.cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(CronLogger(logger))))
	_, err := mon.cron.AddFunc(spec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, mon.timeout)
		defer cancel()
		mon.ProbeAll(rctx)
	})
	if err != nil {
		return nil, err
	}
	return mon, nil
}

// ProbeAll queries every endpoint once and records the outcome.
func (m *Monitor) ProbeAll(ctx context.Context) {
	for _, t := range m.targets {
		ep := t.name
		height, err := t.client.LatestHeight(ctx)
		probe := Probe{Height: height, CheckedAt: time.Now().UTC()}
		if err != nil {
			probe.Error = err.Error()
			// keep the last known height so a blip does not zero the report
			if prev, ok := m.probes.Load(ep); ok {
				probe.Height = prev.Height
			}
			m.logger.Warn("Height probe failed", zap.String("endpoint", ep), zap.Error(err))
		} else {
			m.metrics.SetLatestHeight(ep, height)
		}
		m.probes.Store(ep, probe)
	}
}

// Snapshot returns the latest probe of each endpoint probed so far.
func (m *Monitor) Snapshot() map[string]Probe {
	out := make(map[string]Probe, m.probes.Size())
	m.probes.Range(func(ep string, p Probe) bool {
		out[ep] = p
		return true
	})
	return out
}

// Start starts the cron scheduler.
func (m *Monitor) Start() {
	m.cron.Start()
	m.logger.Info("Height probe started", zap.String("cronSpec", m.spec), zap.Int("endpoints", len(m.targets)))
}

// Stop stops the scheduler and waits for a running probe to finish.
func (m *Monitor) Stop() {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
}

type target struct {
	name   string
	client rpc.Client
}

// EndpointLabel is the host of the i-th endpoint, or "endpoint-<i>" when it has none.
func EndpointLabel(endpoint string, i int) string {
	if host := rpc.EndpointHost(endpoint); host != "endpoint" {
		return host
	}
	return fmt.Sprintf("endpoint-%d", i)
}

// cronLogger routes cron's own logging (recovered panics included) to zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

// CronLogger adapts a zap logger to cron.Logger.
func CronLogger(logger *zap.Logger) cron.Logger {
	return cronLogger{sugar: logger.Sugar()}
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
