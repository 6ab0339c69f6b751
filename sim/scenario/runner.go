package scenario

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/supplychain-sim/sim"
)

// Run executes every experiment of s in order, one harness session each, and
// returns the summaries. Each experiment samples from its own stream derived
// from the scenario seed; a scenario without a seed gets a fresh random one. It stops at the first failing experiment and
// returns its error unchanged.
//
// reporter receives every summary and is not closed: it outlives the
// per-experiment sessions and belongs to the caller.
func Run(s *Scenario, reporter sim.Reporter) ([]sim.Summary, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", sim.ErrConfiguration, err)
	}
	if reporter == nil {
		reporter = sim.NewStdoutReporter()
	}
	key := sim.RandomKey()
	if s.Seed != nil {
		key = sim.SimulationKey(*s.Seed)
	}
	logrus.Infof("Running %d experiments with seed=%d", len(s.Experiments), key.Seed())

	summaries := make([]sim.Summary, 0, len(s.Experiments))
	for i := range s.Experiments {
		e := &s.Experiments[i]
		cfg := sim.HarnessConfig{
			Times: e.Times,
			Title: e.Title,
			Seed:  sim.Seeded(key.Experiment(i).Seed()),
		}
		logrus.Debugf("Running experiment %d %q (%s, %d times)", i, e.Title, e.Metric, e.Times)
		err := sim.WithHarness(cfg, sim.NopCloser(reporter), func(h *sim.Harness) error {
			fn, err := e.Computation(h)
			if err != nil {
				return fmt.Errorf("%w: %w", sim.ErrConfiguration, err)
			}
			summary, err := h.Simulate()(fn)
			if err != nil {
				return err
			}
			summaries = append(summaries, summary)
			return nil
		})
		if err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}
