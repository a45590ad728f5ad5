package mockdb

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	ops      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mockdb_operations_total",
			Help: "Количество операций хранилища по таблицам и исходу.",
		}, []string{"table", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockdb_operation_duration_seconds",
			Help:    "Длительность операций хранилища, включая искусственную задержку.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
	m.ops = register(reg, m.ops)
	m.duration = register(reg, m.duration)
	return m
}

// register возвращает уже зарегистрированный коллектор, если такой есть.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (s *Store) observe(table, op string, started time.Time, success *bool) {
	if s.metrics == nil {
		return
	}
	outcome := "error"
	if *success {
		outcome = "ok"
	}
	s.metrics.ops.WithLabelValues(table, op, outcome).Inc()
	s.metrics.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}
