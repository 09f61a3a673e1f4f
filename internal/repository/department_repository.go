package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/time-service/internal/domain"
)

// DepartmentRepository manages the department master list.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	ListActive(ctx context.Context) ([]domain.Department, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}

type departmentRepository struct {
	db DB
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(db DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

const departmentColumns = `id, name, active, created_at, created_by, updated_at, COALESCE(updated_by, '')`

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name, active, created_at, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	if err := r.db.QueryRow(ctx, query,
		dept.Name,
		dept.Active,
		dept.CreatedAt,
		dept.CreatedBy,
	).Scan(&dept.ID); err != nil {
		return fmt.Errorf("insert department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, active=$2, updated_at=$3, updated_by=$4
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		dept.Name,
		dept.Active,
		dept.UpdatedAt,
		dept.UpdatedBy,
		dept.ID,
	)
	if err != nil {
		return fmt.Errorf("update department: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id=$1`
	dept, err := scanDepartment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return dept, nil
}

// List returns active departments first, then inactive, each by name.
func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY active DESC, name`
	return r.list(ctx, query)
}

func (r *departmentRepository) ListActive(ctx context.Context) ([]domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE active = TRUE ORDER BY name`
	return r.list(ctx, query)
}

// NameExists compares case-insensitively; excludeID skips the department being renamed.
func (r *departmentRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM departments WHERE LOWER(name) = LOWER($1) AND id <> $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check department name: %w", err)
	}
	return exists, nil
}

func (r *departmentRepository) list(ctx context.Context, query string) ([]domain.Department, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *dept)
	}
	return result, rows.Err()
}

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var dept domain.Department
	if err := row.Scan(
		&dept.ID,
		&dept.Name,
		&dept.Active,
		&dept.CreatedAt,
		&dept.CreatedBy,
		&dept.UpdatedAt,
		&dept.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}
