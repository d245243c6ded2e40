package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category groups courses
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Name == "" {
		return notNull("categories", "name")
	}
	return nil
}

// Course is an offering taught by an instructor user
type Course struct {
	ID           uint                        `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
	Title        string                      `gorm:"type:varchar(200);not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Price        float64                     `gorm:"not null;default:0;check:price >= 0" json:"price"`
	CategoryID   uint                        `gorm:"not null;index" json:"category_id"`
	InstructorID uint                        `gorm:"not null;index" json:"instructor_id"` // references users.id
	Resources    datatypes.JSONSlice[string] `json:"resources"`

	// Relationships
	Category   Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
	Instructor User       `gorm:"foreignKey:InstructorID;constraint:OnDelete:RESTRICT" json:"-"`
	Bookings   []Booking  `gorm:"foreignKey:CourseID;constraint:OnDelete:RESTRICT" json:"-"`
	Feedback   []Feedback `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	if c.Title == "" {
		return notNull("courses", "title")
	}
	return nonNegative("courses", "price", c.Price)
}

// CourseInstructor is the instructor summary embedded in a course response
type CourseInstructor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// CourseResponse is the API representation of a course
type CourseResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	CategoryID  uint             `json:"category_id"`
	Category    string           `json:"category"`
	Instructor  CourseInstructor `json:"instructor"`
	Resources   []string         `json:"resources"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ToResponse expects Category and Instructor to be loaded
func (c *Course) ToResponse() CourseResponse {
	resources := []string(c.Resources)
	if resources == nil {
		resources = []string{}
	}
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		CategoryID:  c.CategoryID,
		Category:    c.Category.Name,
		Instructor: CourseInstructor{
			ID:       c.InstructorID,
			Username: c.Instructor.Username,
		},
		Resources: resources,
		CreatedAt: c.CreatedAt,
	}
}
