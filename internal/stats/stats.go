// Package stats tracks statistics about a table tool run
package stats

import (
	"time"

	humanize "github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// RunStatistics contains statistics about a running table tool
type RunStatistics struct {
	started       bool
	finished      bool
	startTime     time.Time
	totalRuntime  time.Duration
	rowsRead      []int64 // per input
	bytesRead     []int64 // per input, -1 if unknown
	rowsWritten   int64
	rowsFiltered  int64
	phaseRuntimes map[string]time.Duration

	// temp vars
	currentPhase          string
	currentPhaseStartTime time.Time
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start(numInputs int) {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.rowsRead = make([]int64, numInputs)
		rs.bytesRead = make([]int64, numInputs)
		rs.phaseRuntimes = make(map[string]time.Duration)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	if rs.currentPhase != "" {
		rs.EndPhase()
	}
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// StartPhase tracks the beginning of a named phase of the run (e.g. "load", "scan", "output")
func (rs *RunStatistics) StartPhase(name string) {
	if rs.currentPhase != "" {
		rs.EndPhase()
	}
	rs.currentPhase = name
	rs.currentPhaseStartTime = time.Now()
}

// EndPhase tracks the end of the current phase
func (rs *RunStatistics) EndPhase() {
	rs.phaseRuntimes[rs.currentPhase] += time.Since(rs.currentPhaseStartTime)
	rs.currentPhase = ""
}

// RowRead counts a row read from input idx
func (rs *RunStatistics) RowRead(idx int) {
	rs.rowsRead[idx]++
}

// SetInputSize records the size in bytes of input idx
func (rs *RunStatistics) SetInputSize(idx int, size int64) {
	rs.bytesRead[idx] = size
}

// RowWritten counts a row written to any output
func (rs *RunStatistics) RowWritten() {
	rs.rowsWritten++
}

// RowFiltered counts a candidate output row rejected by a filter
func (rs *RunStatistics) RowFiltered() {
	rs.rowsFiltered++
}

// GetStartTime returns the start time of the run
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the run
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumRowsRead returns the number of Rows read so far, counted by input
func (rs *RunStatistics) GetNumRowsRead() []int64 {
	return rs.rowsRead
}

// GetNumRowsWritten returns the number of Rows written so far
func (rs *RunStatistics) GetNumRowsWritten() int64 {
	return rs.rowsWritten
}

// GetNumRowsFiltered returns the number of candidate output Rows rejected by filters
func (rs *RunStatistics) GetNumRowsFiltered() int64 {
	return rs.rowsFiltered
}

// GetPhaseRuntimes returns the time spent in each phase
func (rs *RunStatistics) GetPhaseRuntimes() map[string]time.Duration {
	return rs.phaseRuntimes
}

// ToFields converts this struct into log fields
func (rs *RunStatistics) ToFields() log.Fields {
	fields := log.Fields{
		"runtime": rs.GetRuntime().Round(time.Millisecond).String(),
		"written": humanize.Comma(rs.rowsWritten),
	}
	if rs.rowsFiltered > 0 {
		fields["filtered"] = humanize.Comma(rs.rowsFiltered)
	}
	names := []string{"t1", "t2"}
	for i, n := range rs.rowsRead {
		if i >= len(names) {
			break
		}
		fields[names[i]+"_rows"] = humanize.Comma(n)
		if rs.bytesRead[i] > 0 {
			fields[names[i]+"_size"] = humanize.Bytes(uint64(rs.bytesRead[i]))
		}
	}
	for phase, d := range rs.phaseRuntimes {
		fields[phase] = d.Round(time.Millisecond).String()
	}
	return fields
}
