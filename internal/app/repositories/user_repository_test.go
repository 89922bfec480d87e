package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/pkg/apperrors"
)

var userRowColumns = []string{
	"id", "email", "password", "first_name", "last_name", "phone_number",
	"gender", "dob", "profile_image", "role", "is_active", "is_staff",
	"is_superuser", "student_class_id", "last_login", "date_joined",
	"created_at", "updated_at",
}

func userRow(id int64, email string) *pgxmock.Rows {
	gender := "Female"
	now := time.Now()
	return pgxmock.NewRows(userRowColumns).
		AddRow(id, email, "hash", "Jane", "Doe", "5551234567",
			&gender, (*time.Time)(nil), (*string)(nil), models.RoleStudent, true, false,
			false, (*int64)(nil), (*time.Time)(nil), now, now, now)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts and fills generated fields", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now()
		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("jane@school.local").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "date_joined", "created_at", "updated_at"}).
				AddRow(int64(5), now, now, now))

		repo := NewUserRepository(mock)
		user := &models.User{
			Email:     "jane@school.local",
			Password:  "hash",
			FirstName: "Jane",
			LastName:  "Doe",
			Role:      models.RoleStudent,
		}

		require.NoError(t, repo.Create(ctx, user))
		assert.Equal(t, int64(5), user.ID)
		assert.False(t, user.DateJoined.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing email short-circuits the insert", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("dup@school.local").
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

		repo := NewUserRepository(mock)
		err = repo.Create(ctx, &models.User{Email: "dup@school.local"})

		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(int64(5)).
			WillReturnRows(userRow(5, "jane@school.local"))

		repo := NewUserRepository(mock)
		user, err := repo.GetByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, "jane@school.local", user.Email)
		require.NotNil(t, user.Gender)
		assert.Equal(t, models.GenderFemale, *user.Gender)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing maps to not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(int64(404)).
			WillReturnRows(pgxmock.NewRows(userRowColumns))

		repo := NewUserRepository(mock)
		_, err = repo.GetByID(ctx, 404)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs("jane@school.local").
		WillReturnRows(userRow(5, "jane@school.local"))

	repo := NewUserRepository(mock)
	user, err := repo.GetByEmail(ctx, "jane@school.local")

	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAll(t *testing.T) {
	ctx := context.Background()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := userRow(1, "a@school.local")
	gender := "Male"
	now := time.Now()
	rows.AddRow(int64(2), "b@school.local", "hash", "Bob", "Roe", "",
		&gender, (*time.Time)(nil), (*string)(nil), models.RoleAdmin, true, true,
		false, (*int64)(nil), (*time.Time)(nil), now, now, now)
	mock.ExpectQuery(`SELECT (.+) FROM users`).WillReturnRows(rows)

	repo := NewUserRepository(mock)
	users, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@school.local", users[0].Email)
	assert.Equal(t, models.RoleAdmin, users[1].Role)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the hash", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE users`).
			WithArgs("new-hash", pgxmock.AnyArg(), int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewUserRepository(mock)
		require.NoError(t, repo.UpdatePassword(ctx, 5, "new-hash"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows means unknown user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE users`).
			WithArgs("new-hash", pgxmock.AnyArg(), int64(404)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewUserRepository(mock)
		err = repo.UpdatePassword(ctx, 404, "new-hash")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs(int64(5)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewUserRepository(mock)
		require.NoError(t, repo.Delete(ctx, 5))
	})

	t.Run("missing user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs(int64(404)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewUserRepository(mock)
		assert.ErrorIs(t, repo.Delete(ctx, 404), apperrors.ErrUserNotFound)
	})

	t.Run("database error wraps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`DELETE FROM users`).
			WithArgs(int64(5)).
			WillReturnError(errors.New("connection refused"))

		repo := NewUserRepository(mock)
		err = repo.Delete(ctx, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
