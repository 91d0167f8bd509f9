package plotter

import (
	"image/color"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	gplotter "gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vhive-serverless/smtimeline/pkg/trace"
)

// DefaultOutputPath is where the rendered chart lands unless overridden.
const DefaultOutputPath = "sm_timeline.png"

const (
	// Bar thickness in points; vertical spacing between stacked bars of
	// one group is lineWidth + laneSpacing in Y data units.
	lineWidth   = 3
	laneSpacing = 20
	// Extra Y advance after each group.
	groupGap = 5
	// Extra Y advance after each kernel, in units of increments, also used
	// to pad the Y axis range.
	kernelGap = 3
)

// TimelinePlotter renders a normalized timeline as a horizontal-bar chart:
// one row of bars per (kernel, SM) group, one bar per busy interval, one
// distinct color per group, legend labeled with the kernel name.
type TimelinePlotter struct {
	OutputPath string
	Width      vg.Length
	Height     vg.Length
}

func NewTimelinePlotter(outputPath string) *TimelinePlotter {
	return &TimelinePlotter{
		OutputPath: outputPath,
		Width:      8 * vg.Inch,
		Height:     6 * vg.Inch,
	}
}

type legendEntry struct {
	label string
	thumb *gplotter.Line
}

// Render draws the timeline and writes a single PNG to tp.OutputPath,
// overwriting any existing file. An empty timeline produces a blank framed
// chart with no bars and no legend entries.
func (tp *TimelinePlotter) Render(timeline *trace.Timeline) error {
	p := plot.New()
	p.Title.Text = "SM_Timeline"
	p.X.Label.Text = "Clock Cycles"

	increments := float64(lineWidth + laneSpacing)

	nGroups := timeline.NumGroups()
	colors := groupColors(nGroups)

	var entries []legendEntry
	baseIndex := 0.0
	minTime, maxTime := math.Inf(1), math.Inf(-1)
	groupIndex := 0

	for _, kernel := range timeline.Kernels() {
		for _, smID := range timeline.SMs(kernel) {
			intervals := timeline.Intervals(kernel, smID)

			var handle *gplotter.Line
			for i, interval := range intervals {
				y := baseIndex + float64(i)*increments
				bar, err := gplotter.NewLine(gplotter.XYs{
					{X: float64(interval.Start), Y: y},
					{X: float64(interval.End), Y: y},
				})
				if err != nil {
					return err
				}
				bar.LineStyle.Width = vg.Points(lineWidth)
				bar.LineStyle.Color = colors[groupIndex]
				p.Add(bar)

				if handle == nil {
					handle = bar
				}
				minTime = math.Min(minTime, float64(interval.Start))
				maxTime = math.Max(maxTime, float64(interval.End))
			}

			entries = append(entries, legendEntry{label: kernel, thumb: handle})
			baseIndex += increments*float64(len(intervals)) + groupGap
			groupIndex++
		}
		baseIndex += increments * kernelGap
	}

	// Last-drawn group leads the legend.
	for i := len(entries) - 1; i >= 0; i-- {
		p.Legend.Add(entries[i].label, entries[i].thumb)
	}
	p.Legend.Top = true

	p.Y.Min = -increments * kernelGap
	p.Y.Max = baseIndex + increments*kernelGap
	if nGroups == 0 {
		// No data to autoscale from; pin the X axis so layout stays finite.
		p.X.Min, p.X.Max = 0, 1
	}

	log.Debugf("Rendered %d groups spanning clocks [%v, %v] to %s", nGroups, minTime, maxTime, tp.OutputPath)

	return p.Save(tp.Width, tp.Height, tp.OutputPath)
}

// groupColors returns one distinct rainbow color per group, in draw order.
func groupColors(n int) []color.Color {
	switch {
	case n == 0:
		return nil
	case n == 1:
		// Rainbow interpolates between at least two hues.
		return palette.Rainbow(2, palette.Red, palette.Blue, 1, 1, 1).Colors()[:1]
	default:
		return palette.Rainbow(n, palette.Red, palette.Blue, 1, 1, 1).Colors()
	}
}
