package timeentry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, minute int) *time.Time {
	t := time.Date(2024, 1, 15, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestComputeTotalHours(t *testing.T) {
	// A standard 09:00 to 17:00 shift is exactly eight hours
	entry := TimeEntry{StartTime: ts(9, 0), EndTime: ts(17, 0)}
	hours := ComputeTotalHours(entry)
	require.NotNil(t, hours)
	assert.Equal(t, 8.0, *hours)

	entry = TimeEntry{StartTime: ts(9, 0), EndTime: ts(9, 30)}
	hours = ComputeTotalHours(entry)
	require.NotNil(t, hours)
	assert.Equal(t, 0.5, *hours)
}

func TestComputeTotalHoursUndefined(t *testing.T) {
	// Open session
	assert.Nil(t, ComputeTotalHours(TimeEntry{StartTime: ts(9, 0)}))

	// End-only entry
	assert.Nil(t, ComputeTotalHours(TimeEntry{EndTime: ts(17, 0)}))

	// End equals start: undefined, not zero
	assert.Nil(t, ComputeTotalHours(TimeEntry{StartTime: ts(9, 0), EndTime: ts(9, 0)}))

	// End before start
	assert.Nil(t, ComputeTotalHours(TimeEntry{StartTime: ts(17, 0), EndTime: ts(9, 0)}))
}

func TestIsOpenAndIsCompleted(t *testing.T) {
	open := TimeEntry{StartTime: ts(9, 0)}
	assert.True(t, open.IsOpen())
	assert.False(t, open.IsCompleted())

	completed := TimeEntry{StartTime: ts(9, 0), EndTime: ts(17, 0)}
	assert.False(t, completed.IsOpen())
	assert.True(t, completed.IsCompleted())

	endOnly := TimeEntry{EndTime: ts(17, 0)}
	assert.False(t, endOnly.IsOpen())
	assert.False(t, endOnly.IsCompleted())
}

func TestPunchKindValid(t *testing.T) {
	assert.True(t, PunchStart.Valid())
	assert.True(t, PunchEnd.Valid())
	assert.False(t, PunchKind("pause").Valid())
	assert.False(t, PunchKind("").Valid())
}

func TestRecordPunchRequestValidate(t *testing.T) {
	valid := RecordPunchRequest{Date: "2024-01-15", Kind: "start", Time: "09:00"}
	assert.NoError(t, valid.Validate())

	withSeconds := RecordPunchRequest{Date: "2024-01-15", Kind: "end", Time: "17:00:30"}
	assert.NoError(t, withSeconds.Validate())

	bad := RecordPunchRequest{Date: "15/01/2024", Kind: "pause", Time: "9am"}
	err := bad.Validate()
	require.Error(t, err)
}

func TestUpdateEntryRequestValidateEmptyPatch(t *testing.T) {
	var req UpdateEntryRequest
	assert.Error(t, req.Validate())

	confirmed := true
	req = UpdateEntryRequest{IsConfirmed: &confirmed}
	assert.NoError(t, req.Validate())

	endTime := "2024-01-15T17:00:00Z"
	req = UpdateEntryRequest{EndTime: &endTime}
	assert.NoError(t, req.Validate())

	badTime := "17:00"
	req = UpdateEntryRequest{EndTime: &badTime}
	assert.Error(t, req.Validate())
}
