package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom/schoolapi/internal/app/models"
)

func sampleUser() *models.User {
	img := "avatar.png"
	classID := int64(7)
	dob := time.Date(2001, 5, 14, 0, 0, 0, 0, time.UTC)
	gender := models.GenderMale
	return &models.User{
		ID:             42,
		Email:          "jane.doe@school.local",
		Password:       "$2a$12$secret-hash",
		FirstName:      "Jane",
		LastName:       "Doe",
		PhoneNumber:    "5551234567",
		Gender:         &gender,
		DOB:            &dob,
		ProfileImage:   &img,
		Role:           models.RoleStudent,
		IsActive:       true,
		IsStaff:        true,
		StudentClassID: &classID,
	}
}

func TestUserFields_Project(t *testing.T) {
	t.Run("no include renders every table field", func(t *testing.T) {
		got := UserFields.Project(sampleUser(), nil, nil)

		assert.Len(t, got, len(UserFields.Names()))
		assert.Equal(t, int64(42), got["id"])
		assert.Equal(t, "jane.doe@school.local", got["email"])
		assert.Equal(t, "Jane Doe", got["full_name"])
		assert.Equal(t, "2001-05-14", got["dob"])
	})

	t.Run("include narrows to requested fields", func(t *testing.T) {
		got := UserFields.Project(sampleUser(), []string{"id", "email"}, nil)

		assert.Equal(t, map[string]any{
			"id":    int64(42),
			"email": "jane.doe@school.local",
		}, got)
	})

	t.Run("unknown include names are ignored", func(t *testing.T) {
		got := UserFields.Project(sampleUser(), []string{"id", "favorite_color"}, nil)

		assert.Equal(t, map[string]any{"id": int64(42)}, got)
	})

	t.Run("exclude subtracts from the result", func(t *testing.T) {
		got := UserFields.Project(sampleUser(), nil, []string{"email", "phone_number"})

		assert.NotContains(t, got, "email")
		assert.NotContains(t, got, "phone_number")
		assert.Contains(t, got, "full_name")
	})

	t.Run("excluding an absent field is a no-op", func(t *testing.T) {
		withBogus := UserFields.Project(sampleUser(), nil, []string{"no_such_field"})
		plain := UserFields.Project(sampleUser(), nil, nil)

		assert.Equal(t, plain, withBogus)
	})

	t.Run("include and exclude combine", func(t *testing.T) {
		got := UserFields.Project(sampleUser(), []string{"id", "email", "full_name"}, []string{"email"})

		assert.Equal(t, map[string]any{
			"id":        int64(42),
			"full_name": "Jane Doe",
		}, got)
	})

	t.Run("sensitive fields can never be projected", func(t *testing.T) {
		for _, name := range []string{"password", "is_active", "is_staff", "is_superuser"} {
			assert.False(t, UserFields.Has(name), name)
		}

		// Asking for them explicitly yields nothing either.
		got := UserFields.Project(sampleUser(), []string{"password", "is_active", "is_staff"}, nil)
		assert.Empty(t, got)
	})

	t.Run("projection does not mutate the record", func(t *testing.T) {
		user := sampleUser()
		UserFields.Project(user, []string{"id"}, []string{"email"})

		assert.Equal(t, "jane.doe@school.local", user.Email)
		assert.Equal(t, "$2a$12$secret-hash", user.Password)
	})
}

func TestUserFields_FullName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		want      string
	}{
		{"both names", "Jane", "Doe", "Jane Doe"},
		{"first only", "Jane", "", "Jane"},
		{"last only", "", "Doe", "Doe"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &models.User{FirstName: tt.firstName, LastName: tt.lastName}
			got := UserFields.Project(user, []string{"full_name"}, nil)

			assert.Equal(t, tt.want, got["full_name"])
		})
	}
}

func TestUserSummaryFields(t *testing.T) {
	got := UserFields.Project(sampleUser(), UserSummaryFields, nil)

	require.Len(t, got, 4)
	assert.Equal(t, int64(42), got["id"])
	assert.Equal(t, "Jane Doe", got["full_name"])
	assert.Equal(t, "jane.doe@school.local", got["email"])
	img := "avatar.png"
	assert.Equal(t, &img, got["profile_image"])
}

func TestClassFields_Project(t *testing.T) {
	class := &models.Class{ID: 3, Name: "10-A"}
	class.Active = true
	class.CreatedOn = time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)

	got := ClassFields.Project(class, nil, nil)

	assert.Equal(t, int64(3), got["id"])
	assert.Equal(t, "10-A", got["name"])
	assert.Equal(t, true, got["active"])
	assert.Contains(t, got, "created_on")
	assert.Contains(t, got, "last_modified")
}
