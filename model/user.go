package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role is the access level of a user
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// RoleFor derives the role of a self-registered user from the instructor flag
func RoleFor(isInstructor bool) Role {
	if isInstructor {
		return RoleInstructor
	}
	return RoleStudent
}

// User represents a registered account
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         Role      `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	IsInstructor bool      `gorm:"not null;default:false" json:"is_instructor"`
	Address      string    `gorm:"type:varchar(255)" json:"address"`
	ZipCode      string    `gorm:"type:varchar(20)" json:"zip_code"`
	City         string    `gorm:"type:varchar(100)" json:"city"`
	PhoneNumber  string    `gorm:"type:varchar(20)" json:"phone_number"`
	TokenVersion int       `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	Profile         *Profile                `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Instructor      *Instructor             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications   []Notification          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Feedback        []Feedback              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	InvoiceTemplate *InvoiceTemplateSetting `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist  []JWTTokenBlacklist     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Bookings        []Booking               `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Invoices        []Invoice               `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Subscriptions   []Subscription          `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// BeforeSave keeps role and instructor flag in agreement
func (u *User) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(u.Username) == "" {
		return notNull("users", "username")
	}
	if strings.TrimSpace(u.Email) == "" {
		return notNull("users", "email")
	}
	if u.PasswordHash == "" {
		return notNull("users", "password_hash")
	}
	if u.Role == "" {
		u.Role = RoleFor(u.IsInstructor)
	}
	if !u.Role.Valid() {
		return checkFailed("users", "role", "role must be one of admin, instructor, student")
	}
	if (u.Role == RoleInstructor) != u.IsInstructor {
		return checkFailed("users", "role", "role and is_instructor must agree")
	}
	return nil
}

// UserResponse is the public representation of a user
type UserResponse struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsInstructor bool      `json:"is_instructor"`
	Address      string    `json:"address,omitempty"`
	ZipCode      string    `json:"zip_code,omitempty"`
	City         string    `json:"city,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Role:         u.Role,
		IsInstructor: u.IsInstructor,
		Address:      u.Address,
		ZipCode:      u.ZipCode,
		City:         u.City,
		PhoneNumber:  u.PhoneNumber,
		CreatedAt:    u.CreatedAt,
	}
}
