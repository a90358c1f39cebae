package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutoria-backend/models/tutoring"
)

// Tuesday morning; the only Monday in the 7-day horizon is six days out.
var tuesdayMorning = time.Date(2026, 9, 1, 7, 30, 0, 0, time.Local)

func TestGenerateSlots_NoWindows(t *testing.T) {
	got := GenerateSlots(nil, tuesdayMorning)
	assert.Empty(t, got)
}

func TestGenerateSlots_TwoHourWindowYieldsTwoSlots(t *testing.T) {
	windows := []tutoring.AvailabilityWindow{
		{TutorID: 1, DayOfWeek: tutoring.DayMonday, StartTime: "08:00", EndTime: "10:00"},
	}

	got := GenerateSlots(windows, tuesdayMorning)
	require.Len(t, got, 1)

	day := got[0]
	assert.Equal(t, "2026-09-07", day.Date) // the next Monday
	require.Len(t, day.Slots, 2)
	assert.Equal(t, "08:00", day.Slots[0].StartTime)
	assert.Equal(t, "09:00", day.Slots[0].EndTime)
	assert.Equal(t, "09:00", day.Slots[1].StartTime)
	assert.Equal(t, "10:00", day.Slots[1].EndTime)
	assert.Equal(t, "2026-09-07T08:00", day.Slots[0].ID)
}

func TestGenerateSlots_TrailingRemainderDropped(t *testing.T) {
	windows := []tutoring.AvailabilityWindow{
		{TutorID: 1, DayOfWeek: tutoring.DayMonday, StartTime: "08:00", EndTime: "09:30"},
	}

	got := GenerateSlots(windows, tuesdayMorning)
	require.Len(t, got, 1)
	require.Len(t, got[0].Slots, 1)
	assert.Equal(t, "08:00", got[0].Slots[0].StartTime)
	assert.Equal(t, "09:00", got[0].Slots[0].EndTime)
}

func TestGenerateSlots_SubHourWindowYieldsNothing(t *testing.T) {
	windows := []tutoring.AvailabilityWindow{
		{TutorID: 1, DayOfWeek: tutoring.DayMonday, StartTime: "08:00", EndTime: "08:45"},
	}

	got := GenerateSlots(windows, tuesdayMorning)
	assert.Empty(t, got)
}

func TestGenerateSlots_PastSlotsOnCurrentDaySkipped(t *testing.T) {
	windows := []tutoring.AvailabilityWindow{
		{TutorID: 1, DayOfWeek: tutoring.DayTuesday, StartTime: "06:00", EndTime: "10:00"},
	}

	// 07:30 on the Tuesday itself: 06:00 and 07:00 are gone, 08:00 and
	// 09:00 remain.
	got := GenerateSlots(windows, tuesdayMorning)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-09-01", got[0].Date)
	require.Len(t, got[0].Slots, 2)
	assert.Equal(t, "08:00", got[0].Slots[0].StartTime)
	assert.Equal(t, "09:00", got[0].Slots[1].StartTime)

	// Exactly 08:00: a slot starting right now is no longer bookable.
	got = GenerateSlots(windows, time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local))
	require.Len(t, got, 1)
	require.Len(t, got[0].Slots, 1)
	assert.Equal(t, "09:00", got[0].Slots[0].StartTime)
}

func TestGenerateSlots_GroupedAndOrdered(t *testing.T) {
	windows := []tutoring.AvailabilityWindow{
		{TutorID: 1, DayOfWeek: tutoring.DayFriday, StartTime: "14:00", EndTime: "16:00"},
		{TutorID: 1, DayOfWeek: tutoring.DayWednesday, StartTime: "10:00", EndTime: "11:00"},
		{TutorID: 1, DayOfWeek: tutoring.DayWednesday, StartTime: "08:00", EndTime: "09:00"},
	}

	got := GenerateSlots(windows, tuesdayMorning)
	require.Len(t, got, 2)

	assert.Equal(t, "2026-09-02", got[0].Date) // Wednesday before Friday
	assert.Equal(t, "2026-09-04", got[1].Date)

	require.Len(t, got[0].Slots, 2)
	assert.Equal(t, "08:00", got[0].Slots[0].StartTime)
	assert.Equal(t, "10:00", got[0].Slots[1].StartTime)

	require.Len(t, got[1].Slots, 2)
	assert.Equal(t, "14:00", got[1].Slots[0].StartTime)
	assert.Equal(t, "15:00", got[1].Slots[1].StartTime)
}

func TestGenerateSlots_OverlappingWindowsBothEmitted(t *testing.T) {
	// Overlapping windows are allowed; both project their own slots.
	windows := []tutoring.AvailabilityWindow{
		{TutorID: 1, DayOfWeek: tutoring.DayMonday, StartTime: "08:00", EndTime: "10:00"},
		{TutorID: 1, DayOfWeek: tutoring.DayMonday, StartTime: "09:00", EndTime: "11:00"},
	}

	got := GenerateSlots(windows, tuesdayMorning)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Slots, 4)
}

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 510, mins)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("bogus")
	assert.Error(t, err)
}

func TestSortWindows(t *testing.T) {
	windows := []tutoring.AvailabilityWindow{
		{DayOfWeek: tutoring.DaySunday, StartTime: "08:00"},
		{DayOfWeek: tutoring.DayMonday, StartTime: "10:00"},
		{DayOfWeek: tutoring.DayMonday, StartTime: "08:00"},
	}

	SortWindows(windows)

	assert.Equal(t, tutoring.DayMonday, windows[0].DayOfWeek)
	assert.Equal(t, "08:00", windows[0].StartTime)
	assert.Equal(t, "10:00", windows[1].StartTime)
	assert.Equal(t, tutoring.DaySunday, windows[2].DayOfWeek)
}
