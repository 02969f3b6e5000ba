package pkg

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOk    = "ok"
	ResultError = "error"
)

type Prometheus struct {
	Registry  *prometheus.Registry
	Commands  *prometheus.CounterVec
	QueueSize prometheus.Gauge
	Removed   prometheus.Counter
	Truncated prometheus.Counter
}

func NewPrometheus() *Prometheus {
	p := &Prometheus{
		Registry: prometheus.NewRegistry(),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "queue_commands_total",
				Help: "Number of executed queue commands",
			},
			[]string{"command", "result"},
		),
		QueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "queue_size",
			Help: "Current number of elements in the queue",
		}),
		Removed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "queue_removed_total",
			Help: "Number of elements removed from the queue head",
		}),
		Truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "queue_truncated_total",
			Help: "Number of removed values that did not fit into the copy buffer",
		}),
	}
	p.Registry.MustRegister(p.Commands, p.QueueSize, p.Removed, p.Truncated)
	return p
}

func (p *Prometheus) Observe(command string, err error) {
	result := ResultOk
	if err != nil {
		result = ResultError
	}
	p.Commands.WithLabelValues(command, result).Inc()
}
