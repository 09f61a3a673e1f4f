package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/time-service/internal/domain"
)

var departmentColumnNames = []string{"id", "name", "active", "created_at", "created_by", "updated_at", "updated_by"}

func TestDepartmentNameExistsIsCaseInsensitive(t *testing.T) {
	mock := newMockPool(t)
	repo := NewDepartmentRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM departments WHERE LOWER\(name\) = LOWER\(\$1\) AND id <> \$2\)`).
		WithArgs("hr", int64(0)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.NameExists(context.Background(), "hr", 0)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDepartmentGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewDepartmentRepository(mock)

	mock.ExpectQuery(`FROM departments WHERE id=\$1`).
		WithArgs(int64(42)).
		WillReturnRows(pgxmock.NewRows(departmentColumnNames))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestDepartmentListOrdersActiveFirst(t *testing.T) {
	mock := newMockPool(t)
	repo := NewDepartmentRepository(mock)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM departments ORDER BY active DESC, name`).
		WillReturnRows(pgxmock.NewRows(departmentColumnNames).
			AddRow(int64(2), "IT", true, created, "admin", (*time.Time)(nil), "").
			AddRow(int64(1), "Arkiv", false, created, "admin", &created, "admin"))

	depts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, depts, 2)
	assert.True(t, depts[0].Active)
	assert.False(t, depts[1].Active)
	assert.Equal(t, "admin", depts[1].UpdatedBy)
}

func TestDepartmentUpdateMissingRow(t *testing.T) {
	mock := newMockPool(t)
	repo := NewDepartmentRepository(mock)
	now := time.Now()

	mock.ExpectExec(`UPDATE departments SET name=\$1, active=\$2, updated_at=\$3, updated_by=\$4`).
		WithArgs("IT", false, &now, "admin", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	dept := &domain.Department{ID: 9, Name: "IT", UpdatedAt: &now, UpdatedBy: "admin"}
	assert.ErrorIs(t, repo.Update(context.Background(), dept), pgx.ErrNoRows)
}
