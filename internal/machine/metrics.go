package machine

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts link traffic. A nil *Metrics records nothing.
type Metrics struct {
	commands *prometheus.CounterVec
	retries  prometheus.Counter
	connects *prometheus.CounterVec
	ack      prometheus.Histogram
}

// NewMetrics registers the session collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papercut_machine_commands_total",
				Help: "Commands sent to the plotter by outcome",
			},
			[]string{"result"},
		),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "papercut_machine_retries_total",
			Help: "Command retransmissions after a missing acknowledgement",
		}),
		connects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "papercut_machine_connects_total",
				Help: "Connection attempts by outcome",
			},
			[]string{"result"},
		),
		ack: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "papercut_machine_ack_seconds",
			Help:    "Time from sending a command to its acknowledgement",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}
	reg.MustRegister(m.commands, m.retries, m.connects, m.ack)
	return m
}

func (m *Metrics) command(result string) {
	if m != nil {
		m.commands.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) retry() {
	if m != nil {
		m.retries.Inc()
	}
}

func (m *Metrics) connect(result string) {
	if m != nil {
		m.connects.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) acked(seconds float64) {
	if m != nil {
		m.ack.Observe(seconds)
	}
}
