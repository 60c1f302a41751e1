// Package instrument exports presenter resolution metrics to Prometheus.
package instrument

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-presenter/pkg/decorator"
)

const namespace = "presenter"

// Observer counts presenter resolutions and passthroughs per subject.
type Observer struct {
	resolved    *prometheus.CounterVec
	passthrough *prometheus.CounterVec
}

var _ decorator.Observer = (*Observer)(nil)

// NewObserver creates an observer and registers its collectors with reg.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	o := &Observer{
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Values wrapped in a presenter, by subject type.",
		}, []string{"subject", "presenter"}),
		passthrough: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passthroughs_total",
			Help:      "Values returned unwrapped because no presenter matched, by subject type.",
		}, []string{"subject"}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{o.resolved, o.passthrough} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return o, nil
}

// Resolved implements decorator.Observer.
func (o *Observer) Resolved(subject, presenter string) {
	o.resolved.WithLabelValues(subject, presenter).Inc()
}

// Passthrough implements decorator.Observer.
func (o *Observer) Passthrough(subject string) {
	o.passthrough.WithLabelValues(subject).Inc()
}

// ResolvedCounter exposes the resolution counter vector.
func (o *Observer) ResolvedCounter() *prometheus.CounterVec {
	return o.resolved
}

// PassthroughCounter exposes the passthrough counter vector.
func (o *Observer) PassthroughCounter() *prometheus.CounterVec {
	return o.passthrough
}
