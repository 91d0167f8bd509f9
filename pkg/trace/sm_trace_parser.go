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

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// SMTraceParser reads an SM execution trace. A line is a record iff its
// first byte is '-'; everything else (headers, dumps, comments) is skipped.
// Record grammar, tokens separated by single ASCII spaces:
//
//	- <sm_id:int> <kernel:token> <start_clock:int> <end_clock:int>
type SMTraceParser struct {
	TraceFile string
}

func NewSMTraceParser(traceFile string) *SMTraceParser {
	return &SMTraceParser{
		TraceFile: traceFile,
	}
}

// recordFields is the number of tokens a record line must carry after the
// leading '-' token.
const recordFields = 4

func parseRecord(line string, lineNo int) (int, string, Interval, error) {
	tokens := strings.Split(strings.TrimRight(line, "\r\n"), " ")[1:]
	if len(tokens) < recordFields {
		return 0, "", Interval{}, fmt.Errorf("line %d: record has %d fields, want %d", lineNo, len(tokens), recordFields)
	}

	smID, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, "", Interval{}, fmt.Errorf("line %d: bad SM id %q: %w", lineNo, tokens[0], err)
	}

	kernel := tokens[1]

	start, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return 0, "", Interval{}, fmt.Errorf("line %d: bad start clock %q: %w", lineNo, tokens[2], err)
	}

	end, err := strconv.ParseInt(tokens[3], 10, 64)
	if err != nil {
		return 0, "", Interval{}, fmt.Errorf("line %d: bad end clock %q: %w", lineNo, tokens[3], err)
	}

	return smID, kernel, Interval{Start: start, End: end}, nil
}

// Parse reads the whole trace file and returns the per-kernel, per-SM
// timeline with every kernel normalized to start at clock 0. An empty file
// or a file without record lines yields an empty timeline, not an error.
func (p *SMTraceParser) Parse() (*Timeline, error) {
	f, err := os.Open(p.TraceFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	timeline := NewTimeline()
	records := 0

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if len(line) == 0 || line[0] != '-' {
			continue
		}

		smID, kernel, interval, err := parseRecord(line, lineNo)
		if err != nil {
			return nil, err
		}

		timeline.Append(kernel, smID, interval)
		records++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Debugf("Parsed %d records into %d (kernel, SM) groups from %s", records, timeline.NumGroups(), p.TraceFile)

	return timeline.Normalized(), nil
}
