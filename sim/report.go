package sim

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter receives the summary of every completed harness run.
// A Reporter is acquired once per harness session and closed exactly once
// when the session ends, whether or not the run succeeded.
type Reporter interface {
	Report(s Summary) error
	Close() error
}

// separator is the fixed-width rule printed around each text summary.
var separator = strings.Repeat("-", 50)

// TextReporter writes human-readable summary blocks.
type TextReporter struct {
	w      *bufio.Writer
	closer io.Closer // non-nil only when the reporter owns the destination
}

// NewTextReporter writes to w. The caller keeps ownership of w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: bufio.NewWriter(w)}
}

// NewStdoutReporter is the default sink.
func NewStdoutReporter() *TextReporter {
	return NewTextReporter(os.Stdout)
}

// NewTextFileReporter creates (or truncates) path and writes summaries to it.
// The file is closed by Close.
func NewTextFileReporter(path string) (*TextReporter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening report file: %w", err)
	}
	return &TextReporter{w: bufio.NewWriter(f), closer: f}, nil
}

// Report writes
//
//	--------------------------------------------------
//	<title> Summary:
//	- Simulated: <count> times
//	- Average: <average>
//	- Maximum: <maximum>
//	- Minimum: <minimum>
//	--------------------------------------------------
func (r *TextReporter) Report(s Summary) error {
	fmt.Fprintln(r.w, separator)
	fmt.Fprintf(r.w, "%s Summary:\n", s.Title)
	fmt.Fprintf(r.w, "- Simulated: %d times\n", s.Count)
	fmt.Fprintf(r.w, "- Average: %s\n", s.Average)
	fmt.Fprintf(r.w, "- Maximum: %s\n", s.Maximum)
	fmt.Fprintf(r.w, "- Minimum: %s\n", s.Minimum)
	fmt.Fprintln(r.w, separator)
	return r.w.Flush()
}

// Close flushes buffered output and closes the destination if owned.
func (r *TextReporter) Close() error {
	err := r.w.Flush()
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
		r.closer = nil
	}
	return err
}

// JSONReporter writes one JSON object per summary, newline delimited.
type JSONReporter struct {
	enc    *json.Encoder
	closer io.Closer
}

// NewJSONReporter writes to w. The caller keeps ownership of w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

// NewJSONFileReporter creates (or truncates) path and writes summaries to it.
func NewJSONFileReporter(path string) (*JSONReporter, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening report file: %w", err)
	}
	return &JSONReporter{enc: json.NewEncoder(f), closer: f}, nil
}

func (r *JSONReporter) Report(s Summary) error {
	return r.enc.Encode(s)
}

func (r *JSONReporter) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// MultiReporter fans a summary out to several sinks in order.
type MultiReporter []Reporter

func (m MultiReporter) Report(s Summary) error {
	for _, r := range m {
		if err := r.Report(s); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, even when an earlier one fails.
func (m MultiReporter) Close() error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// nopCloser adapts a Reporter whose lifetime is managed elsewhere.
type nopCloser struct{ Reporter }

func (nopCloser) Close() error { return nil }

// NopCloser returns a Reporter whose Close does nothing. Useful when one sink
// outlives several harness sessions.
func NopCloser(r Reporter) Reporter {
	return nopCloser{r}
}
