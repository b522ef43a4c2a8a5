package models

import (
	"time"

	"gorm.io/datatypes"
)

// Lesson is one entry in a curriculum module. Lessons live inside the
// course's curriculum JSON column, not in their own table.
type Lesson struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
	Content  string `json:"content"`
	VideoURL string `json:"videoUrl"`
}

type CourseModule struct {
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

type Course struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title          string                            `gorm:"not null" json:"title"`
	Description    string                            `gorm:"type:text;not null" json:"description"`
	Category       string                            `gorm:"not null" json:"category"`
	Level          string                            `gorm:"not null" json:"level"` // beginner, intermediate, advanced
	Duration       string                            `gorm:"not null" json:"duration"`
	Image          string                            `json:"image"`
	Curriculum     datatypes.JSONSlice[CourseModule] `json:"curriculum"`
	LearningPoints datatypes.JSONSlice[string]       `json:"learningPoints"`
	Instructor     string                            `json:"instructor"` // denormalized creator name
	CreatedByID    uint                              `gorm:"index;not null" json:"-"`
	CreatedBy      *User                             `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	// Derived fields. Enrollment and Review records are the source of
	// truth; these are recomputed by the stats reconciler.
	Rating   float64 `gorm:"default:0" json:"rating"`
	Students int     `gorm:"default:0" json:"students"`
}
