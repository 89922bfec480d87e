package models

import (
	"strings"
	"time"
)

// User defines the user model based on the 'users' table. Email is the
// sole authentication identifier and is globally unique. Password holds
// the bcrypt hash and is never serialized.
type User struct {
	ID             int64      `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Password       string     `json:"-" db:"password"`
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	PhoneNumber    string     `json:"phoneNumber" db:"phone_number"`
	Gender         *Gender    `json:"gender,omitempty" db:"gender"`
	DOB            *time.Time `json:"dob,omitempty" db:"dob"`
	ProfileImage   *string    `json:"profileImage,omitempty" db:"profile_image"`
	Role           Role       `json:"role" db:"role"`
	IsActive       bool       `json:"-" db:"is_active"`
	IsStaff        bool       `json:"-" db:"is_staff"`
	IsSuperuser    bool       `json:"-" db:"is_superuser"`
	StudentClassID *int64     `json:"studentClassId,omitempty" db:"student_class_id"`
	LastLogin      *time.Time `json:"lastLogin,omitempty" db:"last_login"`
	DateJoined     time.Time  `json:"dateJoined" db:"date_joined"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name with a single space, omitting
// whichever part is empty. Both empty yields "".
func (u *User) FullName() string {
	parts := make([]string, 0, 2)
	if u.FirstName != "" {
		parts = append(parts, u.FirstName)
	}
	if u.LastName != "" {
		parts = append(parts, u.LastName)
	}
	return strings.Join(parts, " ")
}
