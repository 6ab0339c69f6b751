// Package sim provides the Monte Carlo engine used to forecast supply-chain
// cost figures under uncertainty.
//
// # Reading Guide
//
//   - sampler.go: bounded (truncated) normal sampling by rejection
//   - simulator.go: Harness, the repeated-trial loop and its scoped session
//   - summary.go: reduction of trial results into count/average/max/min
//   - report.go, metrics.go: reporting sinks (text, JSON, Prometheus)
//
// # Usage
//
//	err := sim.WithHarness(sim.HarnessConfig{Times: 100, Title: "Total Fixed Cost"}, nil,
//		func(h *sim.Harness) error {
//			_, err := h.Simulate()(func() (decimal.Decimal, error) {
//				return h.NormalFloat(100, 20, 3000, 50)
//			})
//			return err
//		})
//
// Trials run sequentially in the calling goroutine. Every value is a
// decimal.Decimal so that sums of many sampled costs stay decimal-exact.
//
// Domain records (costs, centers, products) live in sim/supply; YAML-driven
// experiments live in sim/scenario.
package sim
