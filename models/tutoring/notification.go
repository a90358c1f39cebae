package tutoring

import "time"

const NotificationKindRequest = "REQUEST"

// Notification rows are written when a tutor resolves a request; delivery is
// someone else's job, students fetch them through the API.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `json:"studentId" gorm:"index;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Kind      string    `json:"kind" gorm:"size:30;not null;default:'REQUEST'"`
	IsRead    bool      `json:"isRead" gorm:"default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
