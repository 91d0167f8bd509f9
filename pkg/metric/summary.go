package metric

import (
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/vhive-serverless/smtimeline/pkg/trace"
)

// GroupSummary aggregates the busy intervals of one (kernel, SM) group.
// Occupancy is busy cycles over the group's [earliest start, latest end]
// span, 0 when the span is empty.
type GroupSummary struct {
	Kernel     string
	SMID       int
	Intervals  int
	BusyCycles int64
	MeanLength float64
	MaxLength  int64
	Occupancy  float64
}

// Summarize computes per-group occupancy summaries in draw order.
func Summarize(timeline *trace.Timeline) []GroupSummary {
	groups := timeline.Groups()
	summaries := make([]GroupSummary, 0, len(groups))

	for _, group := range groups {
		lengths := make([]float64, len(group.Intervals))
		var busy, maxLength int64
		spanStart, spanEnd := group.Intervals[0].Start, group.Intervals[0].End

		for i, interval := range group.Intervals {
			length := interval.End - interval.Start
			lengths[i] = float64(length)
			busy += length
			if length > maxLength {
				maxLength = length
			}
			if interval.Start < spanStart {
				spanStart = interval.Start
			}
			if interval.End > spanEnd {
				spanEnd = interval.End
			}
		}

		occupancy := 0.0
		if span := spanEnd - spanStart; span > 0 {
			occupancy = float64(busy) / float64(span)
		}

		summaries = append(summaries, GroupSummary{
			Kernel:     group.Kernel,
			SMID:       group.SMID,
			Intervals:  len(group.Intervals),
			BusyCycles: busy,
			MeanLength: stat.Mean(lengths, nil),
			MaxLength:  maxLength,
			Occupancy:  occupancy,
		})
	}

	return summaries
}

// Log prints one line per group at info level.
func Log(summaries []GroupSummary) {
	for _, s := range summaries {
		log.Infof("kernel %s on SM %d: %d intervals, %d busy cycles, mean length %.1f, max length %d, occupancy %.2f",
			s.Kernel, s.SMID, s.Intervals, s.BusyCycles, s.MeanLength, s.MaxLength, s.Occupancy)
	}
}
