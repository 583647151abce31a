package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts cache and import activity on a private registry.
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry      *prometheus.Registry
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	fetchFailures *prometheus.CounterVec
	imports       *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presetcli_cache_hits_total",
			Help: "Artifacts served from the download cache.",
		}, []string{"kind"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presetcli_cache_misses_total",
			Help: "Artifacts fetched from the network.",
		}, []string{"kind"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presetcli_fetch_failures_total",
			Help: "Failed artifact downloads.",
		}, []string{"kind"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presetcli_imports_total",
			Help: "Presets installed into a synth library.",
		}, []string{"synth"}),
	}
	c.registry.MustRegister(c.cacheHits, c.cacheMisses, c.fetchFailures, c.imports)
	return c
}

func (c *Collector) CacheHit(kind string) {
	if c != nil {
		c.cacheHits.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) CacheMiss(kind string) {
	if c != nil {
		c.cacheMisses.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) FetchFailed(kind string) {
	if c != nil {
		c.fetchFailures.WithLabelValues(kind).Inc()
	}
}

func (c *Collector) Imported(synth string) {
	if c != nil {
		c.imports.WithLabelValues(synth).Inc()
	}
}

// LogSummary writes every non-zero counter to the logger at debug level.
func (c *Collector) LogSummary(logger *slog.Logger) {
	if c == nil {
		return
	}
	families, err := c.registry.Gather()
	if err != nil {
		logger.Error("Failed to gather metrics", "error", err)
		return
	}
	for _, family := range families {
		for _, m := range family.GetMetric() {
			args := []any{"metric", family.GetName(), "value", m.GetCounter().GetValue()}
			for _, label := range m.GetLabel() {
				args = append(args, label.GetName(), label.GetValue())
			}
			logger.Debug("Session metric", args...)
		}
	}
}
