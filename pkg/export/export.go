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

package export

import (
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/vhive-serverless/smtimeline/pkg/trace"
)

// IntervalRecord is one normalized busy interval as written to CSV.
type IntervalRecord struct {
	Kernel     string `csv:"kernel"`
	SMID       int    `csv:"smId"`
	StartClock int64  `csv:"startClock"`
	EndClock   int64  `csv:"endClock"`
}

// Records flattens the timeline into CSV rows in draw order.
func Records(timeline *trace.Timeline) []*IntervalRecord {
	var records []*IntervalRecord
	for _, group := range timeline.Groups() {
		for _, interval := range group.Intervals {
			records = append(records, &IntervalRecord{
				Kernel:     group.Kernel,
				SMID:       group.SMID,
				StartClock: interval.Start,
				EndClock:   interval.End,
			})
		}
	}
	return records
}

// WriteCSV dumps the normalized timeline to a CSV file, one row per
// interval, overwriting any existing file.
func WriteCSV(timeline *trace.Timeline, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records := Records(timeline)
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return err
	}

	log.Debugf("Wrote %d interval records to %s", len(records), path)
	return nil
}
