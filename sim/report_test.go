package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() Summary {
	return Summary{Title: "Total Fixed Cost", Count: 100, Average: d("1290.5"), Maximum: d("1500.25"), Minimum: d("1100")}
}

func TestTextReporter_LiteralShape(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf)
	require.NoError(t, r.Report(sampleSummary()))
	require.NoError(t, r.Close())

	want := "--------------------------------------------------\n" +
		"Total Fixed Cost Summary:\n" +
		"- Simulated: 100 times\n" +
		"- Average: 1290.5\n" +
		"- Maximum: 1500.25\n" +
		"- Minimum: 1100\n" +
		"--------------------------------------------------\n"
	assert.Equal(t, want, buf.String())
}

func TestTextFileReporter_ClosesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	r, err := NewTextFileReporter(path)
	require.NoError(t, err)
	require.NoError(t, r.Report(sampleSummary()))
	require.NoError(t, r.Close())
	require.NoError(t, r.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- Simulated: 100 times")
}

func TestTextFileReporter_BadPath(t *testing.T) {
	_, err := NewTextFileReporter(filepath.Join(t.TempDir(), "missing", "summary.txt"))
	assert.Error(t, err)
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONReporter(&buf)
	require.NoError(t, r.Report(sampleSummary()))
	require.NoError(t, r.Close())

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Total Fixed Cost", got["title"])
	assert.Equal(t, float64(100), got["count"])
	assert.Equal(t, "1290.5", got["average"])
	assert.Contains(t, got, "stats")
}

func TestJSONFileReporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.jsonl")
	r, err := NewJSONFileReporter(path)
	require.NoError(t, err)
	require.NoError(t, r.Report(sampleSummary()))
	require.NoError(t, r.Report(sampleSummary()))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestMultiReporter_ClosesAllAndJoinsErrors(t *testing.T) {
	errA := errors.New("a")
	a := &recordingReporter{closeErr: errA}
	b := &recordingReporter{}
	m := MultiReporter{a, b}

	require.NoError(t, m.Report(sampleSummary()))
	assert.Len(t, a.summaries, 1)
	assert.Len(t, b.summaries, 1)

	err := m.Close()
	assert.ErrorIs(t, err, errA)
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, 1, b.closes, "later sinks are closed even if an earlier one fails")
}

func TestMultiReporter_StopsAtFirstReportError(t *testing.T) {
	errA := errors.New("a")
	a := &recordingReporter{reportErr: errA}
	b := &recordingReporter{}
	err := MultiReporter{a, b}.Report(sampleSummary())
	assert.ErrorIs(t, err, errA)
	assert.Empty(t, b.summaries)
}

func TestNopCloser(t *testing.T) {
	inner := &recordingReporter{}
	r := NopCloser(inner)
	require.NoError(t, r.Report(sampleSummary()))
	require.NoError(t, r.Close())
	assert.Len(t, inner.summaries, 1)
	assert.Zero(t, inner.closes)
}
