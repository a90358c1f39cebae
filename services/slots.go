package services

import (
	"fmt"
	"sort"
	"time"

	"tutoria-backend/models/tutoring"
)

const (
	// SlotHorizonDays is how far ahead bookable slots are generated.
	SlotHorizonDays = 7
	// SlotMinutes is the fixed slot granularity.
	SlotMinutes = 60
)

// Slot is a concrete bookable interval derived from an availability window
// for one calendar date. Slots are never persisted; they are recomputed on
// every view. ID doubles as the UI selection key.
type Slot struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DaySlots groups the slots of one calendar date.
type DaySlots struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    tutoring.DayMonday,
	time.Tuesday:   tutoring.DayTuesday,
	time.Wednesday: tutoring.DayWednesday,
	time.Thursday:  tutoring.DayThursday,
	time.Friday:    tutoring.DayFriday,
	time.Saturday:  tutoring.DaySaturday,
	time.Sunday:    tutoring.DaySunday,
}

// GenerateSlots projects a tutor's recurring weekly windows onto the next
// SlotHorizonDays calendar dates starting at now's date. Each matching window
// is sliced into consecutive 60-minute slots; a slot is only emitted when it
// fits entirely inside the window, so trailing remainders shorter than an
// hour are dropped. Slots on the current date whose start is not after now
// are skipped. Days without slots are omitted; zero windows yield an empty
// result, not an error.
func GenerateSlots(windows []tutoring.AvailabilityWindow, now time.Time) []DaySlots {
	grouped := make([]DaySlots, 0, SlotHorizonDays)
	nowMinutes := now.Hour()*60 + now.Minute()

	for offset := 0; offset < SlotHorizonDays; offset++ {
		date := now.AddDate(0, 0, offset)
		dayCode := weekdayCodes[date.Weekday()]
		dateISO := date.Format("2006-01-02")

		var slots []Slot
		for _, w := range windows {
			if w.DayOfWeek != dayCode {
				continue
			}

			startMins, err := ParseClock(w.StartTime)
			if err != nil {
				continue
			}
			endMins, err := ParseClock(w.EndTime)
			if err != nil {
				continue
			}

			for m := startMins; m+SlotMinutes <= endMins; m += SlotMinutes {
				if offset == 0 && m <= nowMinutes {
					continue
				}
				start := formatClock(m)
				slots = append(slots, Slot{
					ID:        dateISO + "T" + start,
					Date:      dateISO,
					StartTime: start,
					EndTime:   formatClock(m + SlotMinutes),
				})
			}
		}

		if len(slots) == 0 {
			continue
		}
		sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
		grouped = append(grouped, DaySlots{Date: dateISO, Slots: slots})
	}

	return grouped
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// SortWindows orders availability windows Monday first, then by start time,
// matching how tutors see their weekly schedule.
func SortWindows(windows []tutoring.AvailabilityWindow) {
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].DayOfWeek != windows[j].DayOfWeek {
			return tutoring.DayOrder[windows[i].DayOfWeek] < tutoring.DayOrder[windows[j].DayOfWeek]
		}
		return windows[i].StartTime < windows[j].StartTime
	})
}
