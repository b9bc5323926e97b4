package timing

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStamp(t *testing.T) {
	ts := time.Date(2011, time.December, 3, 4, 5, 6, 0, time.UTC)
	assert.Equal(t, "D3L::Time:2011-12-03 04:05:06", Stamp(ts))
}

func TestNowFormat(t *testing.T) {
	re := regexp.MustCompile(`^D3L::Time:\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)
	assert.Regexp(t, re, Now())
}

func TestTimerReport(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		if calls == 1 {
			return base
		}
		return base.Add(2*time.Second + 1500*time.Microsecond)
	}

	timer := startWith(clock)
	assert.Equal(t, base, timer.Started())
	assert.Equal(t, "D3l:Cost time:        2 sec     1500 usec", timer.Report())
}

func TestZeroTimer(t *testing.T) {
	var timer Timer
	assert.Equal(t, time.Duration(0), timer.Elapsed())
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "D3l:Cost time:        0 sec        0 usec"},
		{"sub-second", 250 * time.Millisecond, "D3l:Cost time:        0 sec   250000 usec"},
		{"negative clamps to zero", -time.Second, "D3l:Cost time:        0 sec        0 usec"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCost(tt.d))
		})
	}
}

func TestStartElapsedIsNonNegative(t *testing.T) {
	timer := Start()
	assert.GreaterOrEqual(t, int64(timer.Elapsed()), int64(0))
}
