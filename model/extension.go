package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the extension fields of a non-instructor user
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Address        string    `gorm:"type:varchar(255)" json:"address"`
	PhoneNumber    string    `gorm:"type:varchar(20)" json:"phone_number"`
	ProfilePicture string    `gorm:"type:varchar(500)" json:"profile_picture"`
}

// Instructor holds the extension fields of an instructor user
type Instructor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Expertise      string    `gorm:"type:varchar(255)" json:"expertise"`
	Rate           float64   `gorm:"not null;default:0;check:rate >= 0" json:"rate"`
	ProfilePicture string    `gorm:"type:varchar(500)" json:"profile_picture"`
}

func (i *Instructor) BeforeSave(tx *gorm.DB) error {
	return nonNegative("instructors", "rate", i.Rate)
}

// ExtensionKind tags which extension record a user carries
type ExtensionKind string

const (
	ExtensionNone       ExtensionKind = "none"
	ExtensionProfile    ExtensionKind = "profile"
	ExtensionInstructor ExtensionKind = "instructor"
)

// ExtensionKindFor selects the extension kind from the user's role.
// Admins carry no extension.
func ExtensionKindFor(u *User) ExtensionKind {
	switch {
	case u.IsInstructor:
		return ExtensionInstructor
	case u.Role == RoleAdmin:
		return ExtensionNone
	default:
		return ExtensionProfile
	}
}

// UserExtension is the role-specific record of a user. Exactly one of Profile and
// Instructor is set, matching Kind; both are nil when Kind is ExtensionNone.
type UserExtension struct {
	Kind       ExtensionKind `json:"kind"`
	Profile    *Profile      `json:"profile,omitempty"`
	Instructor *Instructor   `json:"instructor,omitempty"`
}

// NewExtensionFor builds the empty extension record a new user should own
func NewExtensionFor(u *User) UserExtension {
	switch ExtensionKindFor(u) {
	case ExtensionInstructor:
		return UserExtension{Kind: ExtensionInstructor, Instructor: &Instructor{UserID: u.ID}}
	case ExtensionProfile:
		return UserExtension{
			Kind: ExtensionProfile,
			Profile: &Profile{
				UserID:      u.ID,
				Address:     u.Address,
				PhoneNumber: u.PhoneNumber,
			},
		}
	default:
		return UserExtension{Kind: ExtensionNone}
	}
}

// ProfilePatch is a partial update of either extension kind. Nil fields keep the stored value;
// fields that do not apply to the target kind are ignored.
type ProfilePatch struct {
	Bio            *string  `json:"bio"`
	Address        *string  `json:"address"`
	PhoneNumber    *string  `json:"phone_number"`
	Expertise      *string  `json:"expertise"`
	Rate           *float64 `json:"rate" validate:"omitempty,gte=0"`
	ProfilePicture *string  `json:"profile_picture"`
}

// Apply merges the patch into whichever record the extension holds
func (p ProfilePatch) Apply(ext *UserExtension) {
	switch ext.Kind {
	case ExtensionInstructor:
		in := ext.Instructor
		mergeString(&in.Bio, p.Bio)
		mergeString(&in.Expertise, p.Expertise)
		mergeString(&in.ProfilePicture, p.ProfilePicture)
		if p.Rate != nil {
			in.Rate = *p.Rate
		}
	case ExtensionProfile:
		pr := ext.Profile
		mergeString(&pr.Bio, p.Bio)
		mergeString(&pr.Address, p.Address)
		mergeString(&pr.PhoneNumber, p.PhoneNumber)
		mergeString(&pr.ProfilePicture, p.ProfilePicture)
	}
}

func mergeString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// InstructorResponse is the API shape of an instructor together with its user
type InstructorResponse struct {
	ID             uint    `json:"id"`
	UserID         uint    `json:"user_id"`
	Username       string  `json:"username,omitempty"`
	Bio            string  `json:"bio"`
	Expertise      string  `json:"expertise"`
	Rate           float64 `json:"rate"`
	ProfilePicture string  `json:"profile_picture"`
}

func (i *Instructor) ToResponse(username string) InstructorResponse {
	return InstructorResponse{
		ID:             i.ID,
		UserID:         i.UserID,
		Username:       username,
		Bio:            i.Bio,
		Expertise:      i.Expertise,
		Rate:           i.Rate,
		ProfilePicture: i.ProfilePicture,
	}
}
