package models

import "time"

// Review holds one user's rating of one course. The composite unique
// index keeps it to at most one row per (course, user) pair; resubmission
// is an upsert on that key.
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	CourseID uint   `gorm:"uniqueIndex:idx_review_course_user;not null" json:"courseId"`
	UserID   uint   `gorm:"uniqueIndex:idx_review_course_user;not null" json:"userId"`
	Rating   int    `gorm:"not null;check:rating>=1 AND rating<=5" json:"rating"`
	Comment  string `gorm:"size:1000" json:"comment"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
