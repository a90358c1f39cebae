package tutoring

import "time"

// Days of the week as stored on availability windows, Monday first.
const (
	DayMonday    = "MON"
	DayTuesday   = "TUE"
	DayWednesday = "WED"
	DayThursday  = "THU"
	DayFriday    = "FRI"
	DaySaturday  = "SAT"
	DaySunday    = "SUN"
)

// DayOrder gives the display ordering of window days (Monday first).
var DayOrder = map[string]int{
	DayMonday:    0,
	DayTuesday:   1,
	DayWednesday: 2,
	DayThursday:  3,
	DayFriday:    4,
	DaySaturday:  5,
	DaySunday:    6,
}

// AvailabilityWindow is a recurring weekly interval during which a tutor can
// be booked. Times are naive "HH:MM" strings with minute precision; windows
// may overlap, arbitration between colliding requests is manual.
type AvailabilityWindow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TutorID   uint      `json:"tutorId" gorm:"index;not null"`
	DayOfWeek string    `json:"dayOfWeek" gorm:"size:3;not null"`
	StartTime string    `json:"startTime" gorm:"size:5;not null"`
	EndTime   string    `json:"endTime" gorm:"size:5;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
