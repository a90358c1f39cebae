package catalog

import "time"

type Subject struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name" gorm:"size:150;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Semesters []SubjectSemester `json:"semesters,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}

// SubjectSemester tags a subject with a semester of the curriculum it
// belongs to. A subject may be taught in several semesters.
type SubjectSemester struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	SubjectID uint   `json:"subjectId" gorm:"index;not null"`
	Semester  string `json:"semester" gorm:"size:30;not null"`
}

// TutorSubject assigns a subject to a tutor together with the hourly rate
// the tutor charges for it.
type TutorSubject struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TutorID    uint      `json:"tutorId" gorm:"index:idx_tutor_subject,unique;not null"`
	SubjectID  uint      `json:"subjectId" gorm:"index:idx_tutor_subject,unique;not null"`
	HourlyRate float64   `json:"hourlyRate" gorm:"default:0"`
	CreatedAt  time.Time `json:"createdAt"`

	Subject *Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}
