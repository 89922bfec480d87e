package dto

// CreateUserRequest represents user registration data. Accounts are
// created inactive and must be activated by an administrator.
type CreateUserRequest struct {
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password" binding:"required,min=8"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	PhoneNumber    string  `json:"phone_number" binding:"omitempty,max=15"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DOB            *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	ProfileImage   *string `json:"profile_image"`
	Role           *string `json:"role" binding:"omitempty,oneof=SUPERADMIN ADMIN STUDENT"`
	StudentClassID *int64  `json:"student_class"`
}

// UpdateUserRequest represents a full user update. The account flags are
// writable here but never readable anywhere.
type UpdateUserRequest struct {
	Email          string  `json:"email" binding:"required,email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	PhoneNumber    string  `json:"phone_number" binding:"omitempty,max=15"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DOB            *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	ProfileImage   *string `json:"profile_image"`
	Role           *string `json:"role" binding:"omitempty,oneof=SUPERADMIN ADMIN STUDENT"`
	StudentClassID *int64  `json:"student_class"`
	IsActive       *bool   `json:"is_active"`
	IsStaff        *bool   `json:"is_staff"`
	IsSuperuser    *bool   `json:"is_superuser"`
}

// PartialUpdateUserRequest represents a partial user update; nil fields
// are left untouched.
type PartialUpdateUserRequest struct {
	Email          *string `json:"email" binding:"omitempty,email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	PhoneNumber    *string `json:"phone_number" binding:"omitempty,max=15"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	DOB            *string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	ProfileImage   *string `json:"profile_image"`
	Role           *string `json:"role" binding:"omitempty,oneof=SUPERADMIN ADMIN STUDENT"`
	StudentClassID *int64  `json:"student_class"`
	IsActive       *bool   `json:"is_active"`
	IsStaff        *bool   `json:"is_staff"`
	IsSuperuser    *bool   `json:"is_superuser"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
