package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/require"

	"github.com/vhive-serverless/smtimeline/pkg/trace"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	timeline := trace.NewTimeline()
	timeline.Append("kernelA", 0, trace.Interval{Start: 0, End: 10})
	timeline.Append("kernelA", 1, trace.Interval{Start: 5, End: 8})
	timeline.Append("kernelB", 0, trace.Interval{Start: 0, End: 4})

	path := filepath.Join(t.TempDir(), "timeline.csv")
	require.NoError(t, WriteCSV(timeline, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []*IntervalRecord
	require.NoError(t, gocsv.UnmarshalFile(f, &records))

	require.Equal(t, []*IntervalRecord{
		{Kernel: "kernelA", SMID: 0, StartClock: 0, EndClock: 10},
		{Kernel: "kernelA", SMID: 1, StartClock: 5, EndClock: 8},
		{Kernel: "kernelB", SMID: 0, StartClock: 0, EndClock: 4},
	}, records)
}

func TestWriteCSVBadPath(t *testing.T) {
	err := WriteCSV(trace.NewTimeline(), filepath.Join(t.TempDir(), "missing", "timeline.csv"))
	require.Error(t, err)
}
