// sim/simulator.go
package sim

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Computation is one trial body. It must re-create every entity it reads so
// that each invocation is independent of the previous ones.
type Computation func() (decimal.Decimal, error)

// HarnessConfig configures a Harness.
type HarnessConfig struct {
	Times int    // number of trials (must be > 0)
	Title string // label used only when reporting
	Seed  *int64 // master seed for sampling; nil draws a fresh one
}

// Seeded returns a pointer to seed, for HarnessConfig.Seed.
func Seeded(seed int64) *int64 { return &seed }

// Validate checks that the configuration describes at least one trial.
func (c HarnessConfig) Validate() error {
	if c.Times <= 0 {
		return fmt.Errorf("%w: times must be positive, got %d", ErrConfiguration, c.Times)
	}
	if c.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrConfiguration)
	}
	return nil
}

// Harness runs a computation a fixed number of times and reports the
// reduced results. It is single-threaded: trials run one after another.
//
// A Harness is a scoped resource. Close releases its reporter; use
// WithHarness to get that guarantee on every return path.
type Harness struct {
	times    int
	title    string
	results  []decimal.Decimal
	key      SimulationKey
	rng      *rand.Rand
	reporter Reporter
	closed   bool
	log      *logrus.Entry
}

// NewHarness validates cfg and returns a Harness that reports to reporter.
// A nil reporter selects the standard output text sink.
func NewHarness(cfg HarnessConfig, reporter Reporter) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = NewStdoutReporter()
	}
	key := RandomKey()
	if cfg.Seed != nil {
		key = SimulationKey(*cfg.Seed)
	}
	return &Harness{
		times:    cfg.Times,
		title:    cfg.Title,
		key:      key,
		rng:      key.newRand(),
		reporter: reporter,
		log: logrus.WithFields(logrus.Fields{
			"run":   uuid.NewString(),
			"title": cfg.Title,
			"seed":  key.Seed(),
		}),
	}, nil
}

// WithHarness opens a Harness, passes it to body and closes it afterwards.
// An error returned by body is returned unchanged, after the reporter has
// been released. A close error is returned only if body succeeded.
func WithHarness(cfg HarnessConfig, reporter Reporter, body func(h *Harness) error) (err error) {
	h, err := NewHarness(cfg, reporter)
	if err != nil {
		if reporter != nil {
			_ = reporter.Close()
		}
		return err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return body(h)
}

// Run is the one-shot form: it runs fn times times under title with a fresh
// random seed, prints the summary to standard output and returns it.
func Run(fn Computation, times int, title string) (Summary, error) {
	var summary Summary
	err := WithHarness(HarnessConfig{Times: times, Title: title}, nil, func(h *Harness) error {
		var err error
		summary, err = h.Run(fn)
		return err
	})
	return summary, err
}

// Times returns the configured number of trials.
func (h *Harness) Times() int { return h.times }

// Title returns the report label.
func (h *Harness) Title() string { return h.title }

// Seed returns the seed the session samples with. Passing it back through
// HarnessConfig.Seed replays the session.
func (h *Harness) Seed() int64 { return h.key.Seed() }

// Results returns a copy of the values recorded by the last completed run.
func (h *Harness) Results() []decimal.Decimal {
	out := make([]decimal.Decimal, len(h.results))
	copy(out, h.results)
	return out
}

// Run executes fn exactly Times times, in order, and reports the summary.
//
// If any trial fails, the remaining trials are skipped, the partial results
// are discarded, nothing is reported and the trial's error is returned as-is.
func (h *Harness) Run(fn Computation) (Summary, error) {
	if h.closed {
		return Summary{}, fmt.Errorf("%w: harness %q is closed", ErrConfiguration, h.title)
	}
	if fn == nil {
		return Summary{}, fmt.Errorf("%w: nil computation", ErrConfiguration)
	}

	h.results = h.results[:0]
	for trial := 0; trial < h.times; trial++ {
		h.log.Debugf("Trial[%d]: Starting...", trial)
		result, err := fn()
		if err != nil {
			h.log.WithError(err).Debugf("Trial[%d]: aborted after %d of %d trials", trial, trial, h.times)
			h.results = h.results[:0]
			return Summary{}, err
		}
		h.log.Debugf("Trial[%d]: %s", trial, result)
		h.results = append(h.results, result)
	}

	summary, err := Summarize(h.title, h.results)
	if err != nil {
		return Summary{}, err
	}
	if err := h.reporter.Report(summary); err != nil {
		return Summary{}, fmt.Errorf("reporting %q: %w", h.title, err)
	}
	h.log.Infof("Simulated %d times, average %s", summary.Count, summary.Average)
	return summary, nil
}

// Simulate returns a decorator: applying it to a computation runs the
// computation right away and yields the reported summary.
//
//	summary, err := h.Simulate()(func() (decimal.Decimal, error) { ... })
func (h *Harness) Simulate() func(Computation) (Summary, error) {
	return h.Run
}

// Normal samples a bounded normal value for use inside a computation.
// Note the parameter order: upper bound before lower bound.
func (h *Harness) Normal(mean, std, upper, lower decimal.Decimal) (decimal.Decimal, error) {
	bn := BoundedNormal{Mean: mean, Std: std, Lower: lower, Upper: upper}
	if h.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		if p := bn.AcceptanceProbability(); p < 0.01 {
			h.log.Debugf("N(%s, %s) accepts only %.4g of draws inside [%s, %s]", mean, std, p, lower, upper)
		}
	}
	return bn.Sample(h.rng)
}

// NormalFloat is Normal for plain float64 parameters.
func (h *Harness) NormalFloat(mean, std, upper, lower float64) (decimal.Decimal, error) {
	return h.Normal(decimal.NewFromFloat(mean), decimal.NewFromFloat(std),
		decimal.NewFromFloat(upper), decimal.NewFromFloat(lower))
}

// Sample draws from an arbitrary Sampler with the harness's random source.
func (h *Harness) Sample(s Sampler) (decimal.Decimal, error) {
	return s.Sample(h.rng)
}

// Close releases the reporter. It is safe to call more than once; only the
// first call has an effect.
func (h *Harness) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if err := h.reporter.Close(); err != nil {
		return fmt.Errorf("closing reporter for %q: %w", h.title, err)
	}
	return nil
}
