package users

import "time"

// StudentProfile extends User for students. NationalID is the cédula the
// student registered with; it is snapshotted onto every tutoring request.
type StudentProfile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `json:"userId" gorm:"uniqueIndex;not null"`
	NationalID string    `json:"nationalId" gorm:"size:20;not null"`
	Phone      string    `json:"phone,omitempty" gorm:"size:30"`
	Career     string    `json:"career,omitempty" gorm:"size:150"`
	Cycle      string    `json:"cycle,omitempty" gorm:"size:30"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
