package sim

import "errors"

// Error taxonomy. Callers match with errors.Is; every error returned by this
// package wraps exactly one of these sentinels. Errors returned by a
// Computation are propagated unchanged and carry no sentinel of their own.
var (
	// ErrConfiguration reports an invalid harness construction or summary request.
	ErrConfiguration = errors.New("configuration error")

	// ErrSampling reports an unsatisfiable or invalid sampling request.
	ErrSampling = errors.New("sampling error")

	// ErrSamplingExhausted reports that rejection sampling gave up after
	// MaxRejections discarded draws. It matches ErrSampling as well.
	ErrSamplingExhausted = &exhaustedError{}

	// ErrDomain reports a derived quantity that is undefined for its inputs.
	ErrDomain = errors.New("domain error")
)

type exhaustedError struct{}

func (*exhaustedError) Error() string { return "sampling exhausted" }

func (*exhaustedError) Unwrap() error { return ErrSampling }
