package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/supplychain-sim/sim"
)

var (
	// CLI flags for the sample command
	sampleMean  string // Distribution mean
	sampleStd   string // Distribution standard deviation
	sampleLower string // Inclusive lower bound
	sampleUpper string // Inclusive upper bound
	sampleN     int    // Number of draws
	sampleSeed  int64  // Seed for the draws
)

// sampleCmd draws from a bounded normal distribution and summarizes the draws
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Draw from a bounded normal distribution",
	Run: func(cmd *cobra.Command, args []string) {
		params := make(map[string]decimal.Decimal, 4)
		for name, raw := range map[string]string{
			"mean": sampleMean, "std": sampleStd, "lower": sampleLower, "upper": sampleUpper,
		} {
			v, err := decimal.NewFromString(raw)
			if err != nil {
				logrus.Fatalf("Invalid --%s %q: %v", name, raw, err)
			}
			params[name] = v
		}
		bn := sim.BoundedNormal{Mean: params["mean"], Std: params["std"], Lower: params["lower"], Upper: params["upper"]}
		logrus.Infof("Acceptance probability of N(%s, %s) on [%s, %s]: %.6f",
			bn.Mean, bn.Std, bn.Lower, bn.Upper, bn.AcceptanceProbability())

		cfg := sim.HarnessConfig{Times: sampleN, Title: "Bounded Normal", Seed: sim.Seeded(sampleSeed)}
		err := sim.WithHarness(cfg, sim.NewTextReporter(cmd.OutOrStdout()), func(h *sim.Harness) error {
			_, err := h.Simulate()(func() (decimal.Decimal, error) {
				return h.Normal(bn.Mean, bn.Std, bn.Upper, bn.Lower)
			})
			return err
		})
		if err != nil {
			logrus.Fatalf("Sampling failed: %v", err)
		}
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleMean, "mean", "0", "Distribution mean")
	sampleCmd.Flags().StringVar(&sampleStd, "std", "1", "Distribution standard deviation")
	sampleCmd.Flags().StringVar(&sampleLower, "lower", "-3", "Inclusive lower bound")
	sampleCmd.Flags().StringVar(&sampleUpper, "upper", "3", "Inclusive upper bound")
	sampleCmd.Flags().IntVar(&sampleN, "n", 1000, "Number of draws")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", 42, "Seed for the draws")
}
