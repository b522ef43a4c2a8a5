package models

import "time"

type Enrollment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID    uint `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID  uint `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	Progress  int  `gorm:"default:0" json:"progress"` // 0-100
	Completed bool `gorm:"default:false" json:"completed"`

	Course *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
}
