package tutoring

import "time"

const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

const (
	ModalityInPerson = "IN_PERSON"
	ModalityRemote   = "REMOTE"
)

// Session is a scheduled (or proposed) tutoring meeting. It is created in
// PENDING together with its Request and both move through their lifecycle in
// lockstep. Rating is nil until the student rates the completed session,
// and is written at most once.
type Session struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `json:"studentId" gorm:"index;not null"`
	TutorID        uint      `json:"tutorId" gorm:"index;not null"`
	SubjectID      uint      `json:"subjectId" gorm:"index;not null"`
	StartAt        time.Time `json:"startAt" gorm:"not null"`
	EndAt          time.Time `json:"endAt" gorm:"not null"`
	Modality       string    `json:"modality" gorm:"size:20;not null;default:'REMOTE'"`
	Location       string    `json:"location,omitempty" gorm:"size:255"`
	Status         string    `json:"status" gorm:"size:20;not null;default:'PENDING'"`
	StudentComment string    `json:"studentComment,omitempty" gorm:"type:text"`
	TutorComment   string    `json:"tutorComment,omitempty" gorm:"type:text"`
	Rating         *int      `json:"rating"`
	Cost           float64   `json:"cost" gorm:"default:0"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
