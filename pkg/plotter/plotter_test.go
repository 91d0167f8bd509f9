package plotter

import (
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vhive-serverless/smtimeline/pkg/trace"
)

func sampleTimeline() *trace.Timeline {
	timeline := trace.NewTimeline()
	timeline.Append("kernelA", 0, trace.Interval{Start: 0, End: 10})
	timeline.Append("kernelA", 0, trace.Interval{Start: 15, End: 20})
	timeline.Append("kernelA", 1, trace.Interval{Start: 5, End: 8})
	timeline.Append("kernelB", 0, trace.Interval{Start: 0, End: 4})
	return timeline
}

func TestRenderTimeline(t *testing.T) {
	log.SetLevel(log.DebugLevel)

	output := filepath.Join(t.TempDir(), "sm_timeline.png")
	err := NewTimelinePlotter(output).Render(sampleTimeline())
	require.NoError(t, err)
	require.FileExists(t, output)
}

func TestRenderSingleGroup(t *testing.T) {
	timeline := trace.NewTimeline()
	timeline.Append("kernelA", 0, trace.Interval{Start: 0, End: 100})

	output := filepath.Join(t.TempDir(), "sm_timeline.png")
	require.NoError(t, NewTimelinePlotter(output).Render(timeline))
	require.FileExists(t, output)
}

func TestRenderEmptyTimeline(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sm_timeline.png")
	err := NewTimelinePlotter(output).Render(trace.NewTimeline())
	require.NoError(t, err)
	require.FileExists(t, output)
}

func TestGroupColorsDistinct(t *testing.T) {
	require.Nil(t, groupColors(0))
	require.Len(t, groupColors(1), 1)

	colors := groupColors(12)
	require.Len(t, colors, 12)

	seen := make(map[[4]uint32]bool)
	for _, c := range colors {
		r, g, b, a := c.RGBA()
		seen[[4]uint32{r, g, b, a}] = true
	}
	require.Len(t, seen, 12)
}
