package messages

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Message store metrics. All metrics carry a "store" label whose value is the
// Group set in ProviderConfig.
var (
	// AppendedTotal counts messages appended per group.
	AppendedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_appended_total",
			Help: "Total number of messages appended to the history.",
		},
		[]string{"store"},
	)

	// EvictedTotal counts messages dropped per group.
	EvictedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_evicted_total",
			Help: "Total number of messages evicted from the history.",
		},
		[]string{"store"},
	)

	// ClearedTotal counts explicit clears per group.
	ClearedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_cleared_total",
			Help: "Total number of times the history was cleared.",
		},
		[]string{"store"},
	)
)

func init() {
	prometheus.MustRegister(
		AppendedTotal,
		EvictedTotal,
		ClearedTotal,
	)
}

// entriesCollector reports the current history length of one group at scrape time.
type entriesCollector struct {
	desc    *prometheus.Desc
	lenFunc func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.lenFunc()))
}

var (
	entriesCollectorMu sync.Mutex
	entriesCollectors  = make(map[string]*entriesCollector)
	// entriesReg is swapped by tests for an isolated registry.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// registerEntriesCollector registers the entries collector of a group,
// replacing a previous one for the same group.
func registerEntriesCollector(group string, lenFunc func() int) *entriesCollector {
	desc := prometheus.NewDesc(
		"message_entries",
		"Current number of messages in the history.",
		nil,
		prometheus.Labels{"store": group},
	)
	c := &entriesCollector{desc: desc, lenFunc: lenFunc}

	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
	return c
}

func unregisterEntriesCollector(group string) {
	entriesCollectorMu.Lock()
	defer entriesCollectorMu.Unlock()

	if c, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
