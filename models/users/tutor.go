package users

import "time"

type TutorProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex;not null"`
	Career    string    `json:"career,omitempty" gorm:"size:150"`
	Bio       string    `json:"bio,omitempty" gorm:"type:text"`
	ZoomLink  string    `json:"zoomLink,omitempty" gorm:"size:255"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
