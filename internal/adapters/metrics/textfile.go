// Package metrics exports benchmark results in the Prometheus text format, for
// the node exporter's textfile collector.
package metrics

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hailam/compbench/internal/ports"
)

const namespace = "compbench"

// TextfileSink writes each sweep to path, replacing the previous contents.
type TextfileSink struct {
	path string
}

func NewTextfileSink(path string) ports.MetricsSink {
	return &TextfileSink{path: path}
}

func (s *TextfileSink) Export(run ports.Run) error {
	reg, err := Registry(run)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(s.path, reg); err != nil {
		return fmt.Errorf("write metrics to %s: %w", s.path, err)
	}
	return nil
}

// Registry builds a registry holding the gauges for run.
func Registry(run ports.Run) (*prometheus.Registry, error) {
	labels := []string{"command", "file"}
	compressed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "compressed_bytes",
		Help:      "Size of the compressor output in bytes.",
	}, labels)
	ratio := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ratio_percent",
		Help:      "Compressed size as a percentage of the input size.",
	}, labels)
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "duration_seconds",
		Help:      "Wall time spent compressing the input.",
	}, labels)
	limit := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "input_limit_bytes",
		Help:      "Maximum number of input bytes fed to each compressor.",
	}, []string{"file"})
	timestamp := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the benchmark sweep.",
	}, []string{"file"})

	reg := prometheus.NewRegistry()
	for _, c := range []prometheus.Collector{compressed, ratio, duration, limit, timestamp} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	limit.WithLabelValues(run.File).Set(float64(run.Limit))
	timestamp.WithLabelValues(run.File).Set(float64(run.Timestamp.Unix()))
	for _, res := range run.Results {
		compressed.WithLabelValues(res.Command, run.File).Set(float64(res.After))
		if !math.IsNaN(res.Ratio) && !math.IsInf(res.Ratio, 0) {
			ratio.WithLabelValues(res.Command, run.File).Set(res.Ratio)
		}
		duration.WithLabelValues(res.Command, run.File).Set(res.Time.Seconds())
	}
	return reg, nil
}
