package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDate(t *testing.T) {
	run := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	got := ComputeDate(&run, "America/New_York", 3)
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-12", *got)

	// shelf life of one day expires on the run date itself
	got = ComputeDate(&run, "America/New_York", 1)
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-10", *got)
}

func TestComputeDate_NoTracking(t *testing.T) {
	run := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, ComputeDate(nil, "America/New_York", 3))
	assert.Nil(t, ComputeDate(&run, "America/New_York", 0))
	assert.Nil(t, ComputeDate(&run, "America/New_York", -2))
}

func TestComputeDate_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	run := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	got := ComputeDate(&run, "Not/AZone", 3)
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-12", *got)

	got = ComputeDate(&run, "", 3)
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-12", *got)
}

func TestComputeDate_DSTTransition(t *testing.T) {
	// US DST starts 2025-03-09; calendar addition must not lose a day
	run := time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)

	got := ComputeDate(&run, "America/New_York", 2)
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-09", *got)

	got = ComputeDate(&run, "America/New_York", 5)
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-12", *got)
}
