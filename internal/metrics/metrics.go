// Package metrics counts registration operations on a private Prometheus
// registry. The CLI "stats" command prints a snapshot of it.
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Recorder is what the service layer needs.
type Recorder interface {
	Observe(op, outcome string)
}

// Registry owns the cadastro collectors.
type Registry struct {
	reg *prometheus.Registry
	ops *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cadastro",
			Name:      "operations_total",
			Help:      "Registration operations by kind and outcome.",
		}, []string{"op", "outcome"}),
	}
	r.reg.MustRegister(r.ops)
	return r
}

// Observe increments the counter for op and outcome.
func (r *Registry) Observe(op, outcome string) {
	r.ops.WithLabelValues(op, outcome).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Sample is one counter value.
type Sample struct {
	Op      string
	Outcome string
	Value   float64
}

// Snapshot returns every counter sorted by op, then outcome.
func (r *Registry) Snapshot() ([]Sample, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Value: m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				switch lp.GetName() {
				case "op":
					s.Op = lp.GetValue()
				case "outcome":
					s.Outcome = lp.GetValue()
				}
			}
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Op != out[j].Op {
			return out[i].Op < out[j].Op
		}
		return out[i].Outcome < out[j].Outcome
	})
	return out, nil
}

// Print writes the snapshot as "op outcome value" lines.
func (r *Registry) Print(w io.Writer) error {
	samples, err := r.Snapshot()
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		_, err := fmt.Fprintln(w, "no operations yet")
		return err
	}
	for _, s := range samples {
		if _, err := fmt.Fprintf(w, "%-8s %-10s %g\n", s.Op, s.Outcome, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// Nop discards observations.
type Nop struct{}

func (Nop) Observe(string, string) {}
