// Package metrics counts transaction verification and execution outcomes.
// The execution engine itself never touches a counter: the block processor
// owns a Sink and updates it after each call, keeping execution logic free
// of side effects beyond ledger mutation.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/prometheus"
)

// Sink receives per-transaction outcome events.
type Sink interface {
	TransactionVerified(kind string, ok bool)
	TransactionExecuted(kind string, ok bool, took time.Duration)
}

// NoopSink discards all events.
type NoopSink struct{}

func (NoopSink) TransactionVerified(string, bool)                 {}
func (NoopSink) TransactionExecuted(string, bool, time.Duration) {}

// RegistrySink records events into a go-ethereum metrics registry, exposed
// through the Prometheus handler.
type RegistrySink struct {
	registry metrics.Registry
}

func NewRegistrySink() *RegistrySink {
	metrics.Enabled = true
	return &RegistrySink{registry: metrics.NewRegistry()}
}

func (s *RegistrySink) TransactionVerified(kind string, ok bool) {
	metrics.GetOrRegisterCounter(fmt.Sprintf("transaction/%s/verify/count", kind), s.registry).Inc(1)
	if ok {
		metrics.GetOrRegisterCounter(fmt.Sprintf("transaction/%s/verify/success", kind), s.registry).Inc(1)
	}
}

func (s *RegistrySink) TransactionExecuted(kind string, ok bool, took time.Duration) {
	metrics.GetOrRegisterCounter(fmt.Sprintf("transaction/%s/execute/count", kind), s.registry).Inc(1)
	if ok {
		metrics.GetOrRegisterCounter(fmt.Sprintf("transaction/%s/execute/success", kind), s.registry).Inc(1)
	}
	metrics.GetOrRegisterTimer(fmt.Sprintf("transaction/%s/execute/duration", kind), s.registry).Update(took)
}

// PrometheusHandler exposes the sink's registry in Prometheus text format.
func (s *RegistrySink) PrometheusHandler() http.Handler {
	return prometheus.Handler(s.registry)
}
