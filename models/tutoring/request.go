package tutoring

import "time"

// Request is the student-initiated ask that a Session be honored. Exactly one
// Session exists per Request; their statuses are kept consistent by updating
// both inside one transaction. StudentName and StudentNationalID are
// snapshots taken at submission time.
type Request struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StudentID         uint      `json:"studentId" gorm:"index;not null"`
	TutorID           uint      `json:"tutorId" gorm:"index;not null"`
	SubjectID         uint      `json:"subjectId" gorm:"index;not null"`
	SessionID         uint      `json:"sessionId" gorm:"uniqueIndex;not null"`
	Reference         string    `json:"reference" gorm:"size:36;not null"`
	StudentName       string    `json:"studentName" gorm:"size:200;not null"`
	StudentNationalID string    `json:"studentNationalId" gorm:"size:20;not null"`
	Comment           string    `json:"comment,omitempty" gorm:"type:text"`
	Status            string    `json:"status" gorm:"size:20;not null;default:'PENDING'"`
	CreatedAt         time.Time `json:"createdAt"`

	Session *Session `json:"session,omitempty" gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}
