/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package trace

// Interval is one busy period of a single SM, in clock cycles.
// End >= Start is expected but not enforced.
type Interval struct {
	Start int64
	End   int64
}

// Group is one (kernel, SM id) pair together with its interval sequence.
// A group is the atomic row of the rendered timeline.
type Group struct {
	Kernel    string
	SMID      int
	Intervals []Interval
}

type lane struct {
	smID      int
	intervals []Interval
}

type kernelLanes struct {
	name  string
	lanes []*lane
	index map[int]int
}

// Timeline maps kernel name -> SM id -> busy intervals. Iteration order at
// both levels is the order of first appearance in the trace, which also
// fixes draw order, palette order, and legend order downstream.
type Timeline struct {
	kernels []*kernelLanes
	index   map[string]int
	nGroups int
}

func NewTimeline() *Timeline {
	return &Timeline{
		index: make(map[string]int),
	}
}

// Append records one interval for the given (kernel, SM id) pair, creating
// the kernel and lane entries on first occurrence. It reports whether a new
// group was created by this call.
func (t *Timeline) Append(kernel string, smID int, interval Interval) bool {
	ki, ok := t.index[kernel]
	if !ok {
		ki = len(t.kernels)
		t.index[kernel] = ki
		t.kernels = append(t.kernels, &kernelLanes{
			name:  kernel,
			index: make(map[int]int),
		})
	}

	k := t.kernels[ki]
	li, ok := k.index[smID]
	if !ok {
		li = len(k.lanes)
		k.index[smID] = li
		k.lanes = append(k.lanes, &lane{smID: smID})
		t.nGroups++
	}

	k.lanes[li].intervals = append(k.lanes[li].intervals, interval)
	return !ok
}

// NumGroups returns the number of distinct (kernel, SM id) pairs. It equals
// the number of colors and legend entries the plotter will produce.
func (t *Timeline) NumGroups() int {
	return t.nGroups
}

// Kernels returns kernel names in first-appearance order.
func (t *Timeline) Kernels() []string {
	names := make([]string, len(t.kernels))
	for i, k := range t.kernels {
		names[i] = k.name
	}
	return names
}

// SMs returns the SM ids seen for a kernel in first-appearance order.
func (t *Timeline) SMs(kernel string) []int {
	ki, ok := t.index[kernel]
	if !ok {
		return nil
	}

	k := t.kernels[ki]
	ids := make([]int, len(k.lanes))
	for i, l := range k.lanes {
		ids[i] = l.smID
	}
	return ids
}

// Intervals returns the interval sequence of one (kernel, SM id) pair in
// the order the intervals appeared in the trace.
func (t *Timeline) Intervals(kernel string, smID int) []Interval {
	ki, ok := t.index[kernel]
	if !ok {
		return nil
	}

	k := t.kernels[ki]
	li, ok := k.index[smID]
	if !ok {
		return nil
	}
	return k.lanes[li].intervals
}

// Groups flattens the timeline into draw order: kernels in first-appearance
// order, SMs in first-appearance order within each kernel.
func (t *Timeline) Groups() []Group {
	var groups []Group
	for _, k := range t.kernels {
		for _, l := range k.lanes {
			groups = append(groups, Group{
				Kernel:    k.name,
				SMID:      l.smID,
				Intervals: l.intervals,
			})
		}
	}
	return groups
}

func (k *kernelLanes) minStart() int64 {
	var min int64
	first := true
	for _, l := range k.lanes {
		for _, iv := range l.intervals {
			if first || iv.Start < min {
				min = iv.Start
				first = false
			}
		}
	}
	return min
}

// Normalized returns a new timeline in which every kernel's intervals are
// shifted so that the kernel's earliest start becomes 0. The shift is
// computed per kernel across all of its SMs, never across kernels, so that
// phases with disjoint absolute clock ranges stay visually comparable.
// The receiver is left untouched.
func (t *Timeline) Normalized() *Timeline {
	normalized := NewTimeline()
	for _, k := range t.kernels {
		shift := k.minStart()
		for _, l := range k.lanes {
			for _, iv := range l.intervals {
				normalized.Append(k.name, l.smID, Interval{
					Start: iv.Start - shift,
					End:   iv.End - shift,
				})
			}
		}
	}
	return normalized
}
