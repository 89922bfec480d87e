package projection

import (
	"github.com/classroom/schoolapi/internal/app/models"
)

// UserFields is the projectable field table for users. password, is_active
// and is_staff are deliberately absent: they are write-only by policy.
var UserFields = NewFieldSpec(
	Field[*models.User]{Name: "id", Get: func(u *models.User) any { return u.ID }},
	Field[*models.User]{Name: "email", Get: func(u *models.User) any { return u.Email }},
	Field[*models.User]{Name: "full_name", Get: func(u *models.User) any { return u.FullName() }},
	Field[*models.User]{Name: "last_login", Get: func(u *models.User) any { return u.LastLogin }},
	Field[*models.User]{Name: "gender", Get: func(u *models.User) any { return u.Gender }},
	Field[*models.User]{Name: "dob", Get: func(u *models.User) any {
		if u.DOB == nil {
			return nil
		}
		return u.DOB.Format("2006-01-02")
	}},
	Field[*models.User]{Name: "profile_image", Get: func(u *models.User) any { return u.ProfileImage }},
	Field[*models.User]{Name: "first_name", Get: func(u *models.User) any { return u.FirstName }},
	Field[*models.User]{Name: "last_name", Get: func(u *models.User) any { return u.LastName }},
	Field[*models.User]{Name: "phone_number", Get: func(u *models.User) any { return u.PhoneNumber }},
	Field[*models.User]{Name: "student_class", Get: func(u *models.User) any { return u.StudentClassID }},
)

// UserSummaryFields is the projection embedded in the login payload.
var UserSummaryFields = []string{"id", "full_name", "profile_image", "email"}

// ClassFields is the projectable field table for classes.
var ClassFields = NewFieldSpec(
	Field[*models.Class]{Name: "id", Get: func(c *models.Class) any { return c.ID }},
	Field[*models.Class]{Name: "name", Get: func(c *models.Class) any { return c.Name }},
	Field[*models.Class]{Name: "created_on", Get: func(c *models.Class) any { return c.CreatedOn }},
	Field[*models.Class]{Name: "last_modified", Get: func(c *models.Class) any { return c.LastModified }},
	Field[*models.Class]{Name: "active", Get: func(c *models.Class) any { return c.Active }},
)
