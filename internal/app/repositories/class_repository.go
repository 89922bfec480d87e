package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/classroom/schoolapi/internal/app/models"
	"github.com/classroom/schoolapi/internal/pkg/apperrors"
)

// IClassRepository defines the interface for class-related database operations
type IClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	GetAll(ctx context.Context) ([]*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
	CountUsers(ctx context.Context, classID int64) (int64, error)
}

// ClassRepository handles database operations for classes
type ClassRepository struct {
	db DB
}

// NewClassRepository creates a new ClassRepository
func NewClassRepository(db DB) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// Create inserts a new class
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO classes (name, active)
		VALUES ($1, $2)
		RETURNING id, created_on, last_modified`,
		class.Name, class.Active).Scan(&class.ID, &class.CreatedOn, &class.LastModified)

	if err != nil {
		return fmt.Errorf("error creating class: %w", err)
	}

	return nil
}

// GetByID retrieves a class by ID
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	var class models.Class
	err := r.db.QueryRow(ctx, `
		SELECT id, name, created_on, last_modified, active
		FROM classes
		WHERE id = $1`,
		id).Scan(&class.ID, &class.Name, &class.CreatedOn, &class.LastModified, &class.Active)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}

	return &class, nil
}

// GetAll retrieves all classes
func (r *ClassRepository) GetAll(ctx context.Context) ([]*models.Class, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, created_on, last_modified, active
		FROM classes
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(&class.ID, &class.Name, &class.CreatedOn,
			&class.LastModified, &class.Active); err != nil {
			return nil, err
		}
		classes = append(classes, &class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// Update updates an existing class
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE classes
		SET name = $1, active = $2, last_modified = $3
		WHERE id = $4`,
		class.Name, class.Active, time.Now(), class.ID)

	if err != nil {
		return fmt.Errorf("error updating class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// Delete deletes a class by ID. Users assigned to the class are removed
// by the schema's cascade.
func (r *ClassRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}

	return nil
}

// CountUsers returns the number of users assigned to a class
func (r *ClassRepository) CountUsers(ctx context.Context, classID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM users WHERE student_class_id = $1`,
		classID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting class users: %w", err)
	}

	return count, nil
}
