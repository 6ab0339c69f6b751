package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/supplychain-sim/sim/scenario"
)

var (
	// CLI flags shared by the run and examples commands
	seed            int64  // Seed for cost sampling (overrides the scenario seed when set)
	times           int    // Trials per experiment (overrides the scenario when > 0)
	logLevel        string // Log verbosity level
	format          string // Summary format: text or json
	outputPath      string // Summary destination file (stdout when empty)
	metricsTextfile string // Prometheus textfile destination (disabled when empty)

	// CLI flags for the run command
	scenarioPath string // YAML scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "supplychain-sim",
	Short: "Monte Carlo forecasts of supply-chain costs",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd forecasts the experiments of a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the experiments of a YAML scenario",
	Run: func(cmd *cobra.Command, args []string) {
		if scenarioPath == "" {
			logrus.Fatalf("Scenario file not provided. Use --scenario.")
		}
		s, err := scenario.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		runScenario(cmd, s)
	},
}

// examplesCmd runs the bundled example scenario
var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Run the bundled example experiments",
	Run: func(cmd *cobra.Command, args []string) {
		s, err := scenario.Builtin()
		if err != nil {
			logrus.Fatalf("Failed to load bundled scenario: %v", err)
		}
		runScenario(cmd, s)
	},
}

// runScenario applies the command-line overrides and runs s.
func runScenario(cmd *cobra.Command, s *scenario.Scenario) {
	if cmd.Flags().Changed("seed") {
		v := seed
		s.Seed = &v
	}
	s.OverrideTimes(times)

	reporter, export, err := newReporter(os.Stdout)
	if err != nil {
		logrus.Fatalf("Failed to set up reporting: %v", err)
	}
	summaries, runErr := scenario.Run(s, reporter)
	if err := reporter.Close(); err != nil {
		logrus.Errorf("Failed to close report: %v", err)
	}
	if runErr != nil {
		logrus.Fatalf("Simulation failed after %d experiments: %v", len(summaries), runErr)
	}
	if err := export(); err != nil {
		logrus.Fatalf("Failed to write metrics: %v", err)
	}
	logrus.Info("Simulation complete.")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerOutputFlags adds the flags shared by commands that report summaries.
func registerOutputFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 0, "Seed for cost sampling (overrides the scenario seed; a scenario without one is random)")
	c.Flags().IntVar(&times, "times", 0, "Trials per experiment (0 keeps the scenario value)")
	c.Flags().StringVar(&format, "format", "text", "Summary format (text, json)")
	c.Flags().StringVar(&outputPath, "output", "", "Write summaries to this file instead of stdout")
	c.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file after the run")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	registerOutputFlags(runCmd)
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to the YAML scenario file")
	registerOutputFlags(examplesCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(sampleCmd)
}
