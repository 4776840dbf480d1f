package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestDayBoundsUTC(t *testing.T) {
	// Early morning in a +13 zone is still the previous day in UTC.
	loc := time.FixedZone("NZDT", 13*60*60)
	local := time.Date(2025, 3, 11, 1, 30, 0, 0, loc)

	start, end := DayBoundsUTC(local)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}
