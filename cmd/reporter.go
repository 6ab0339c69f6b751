package cmd

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/supplychain-sim/sim"
)

// newReporter builds the summary sink selected by the --format, --output and
// --metrics-textfile flags. The returned export func writes collected
// metrics once every experiment has finished; it is a no-op when metrics
// are disabled.
func newReporter(stdout io.Writer) (sim.Reporter, func() error, error) {
	var primary sim.Reporter
	var err error
	switch format {
	case "text":
		if outputPath == "" {
			primary = sim.NewTextReporter(stdout)
		} else {
			primary, err = sim.NewTextFileReporter(outputPath)
		}
	case "json":
		if outputPath == "" {
			primary = sim.NewJSONReporter(stdout)
		} else {
			primary, err = sim.NewJSONFileReporter(outputPath)
		}
	default:
		return nil, nil, fmt.Errorf("unknown format %q; valid: text, json", format)
	}
	if err != nil {
		return nil, nil, err
	}

	if metricsTextfile == "" {
		return primary, func() error { return nil }, nil
	}
	reg := prometheus.NewRegistry()
	metrics, err := sim.NewMetrics(reg)
	if err != nil {
		_ = primary.Close()
		return nil, nil, err
	}
	export := func() error {
		return prometheus.WriteToTextfile(metricsTextfile, reg)
	}
	return sim.MultiReporter{primary, metrics}, export, nil
}
