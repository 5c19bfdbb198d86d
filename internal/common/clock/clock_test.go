package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_MicrosecondUTC(t *testing.T) {
	now := NewRealClock().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := NewMockClock(start)

	clk.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), clk.Now())

	clk.SetTime(start)
	assert.Equal(t, start, clk.Now())
}
