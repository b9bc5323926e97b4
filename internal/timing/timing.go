// Package timing renders wall-clock timestamps in the log format used by the
// library and measures elapsed time with explicit Timer values.
package timing

import (
	"fmt"
	"time"
)

// Stamp formats t as "D3L::Time:YYYY-MM-DD HH:MM:SS" in t's location
func Stamp(t time.Time) string {
	return fmt.Sprintf("D3L::Time:%4d-%02d-%02d %02d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// Now returns the stamp of the current local time
func Now() string {
	return Stamp(time.Now())
}

// Timer marks the start of a measured interval. The zero value is not started.
type Timer struct {
	start time.Time
	now   func() time.Time
}

// Start returns a Timer started at the current time
func Start() Timer {
	return startWith(time.Now)
}

func startWith(now func() time.Time) Timer {
	return Timer{start: now(), now: now}
}

// Started returns the time the timer was started
func (t Timer) Started() time.Time {
	return t.start
}

// Elapsed returns the time passed since Start
func (t Timer) Elapsed() time.Duration {
	if t.now == nil {
		return 0
	}
	return t.now().Sub(t.start)
}

// Report renders the elapsed time as "D3l:Cost time: <sec> sec <usec> usec"
func (t Timer) Report() string {
	return FormatCost(t.Elapsed())
}

// FormatCost renders d split into whole seconds and remaining microseconds
func FormatCost(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int64(d / time.Second)
	usec := int64((d % time.Second) / time.Microsecond)
	return fmt.Sprintf("D3l:Cost time: %8d sec %8d usec", sec, usec)
}
