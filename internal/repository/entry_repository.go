package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/time-service/internal/domain"
)

// EntryFilter narrows entry listings. Nil fields are ignored; set fields are ANDed.
// DateFrom and DateTo are inclusive calendar dates, read in their own location.
type EntryFilter struct {
	Username   *string
	FullName   *string
	Department *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Sort       domain.Sort
}

// EntryRepository encapsulates time entry persistence.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.TimeEntry) error
	List(ctx context.Context, filter EntryFilter) ([]domain.TimeEntry, error)
	UpdateOwned(ctx context.Context, entry *domain.TimeEntry) (bool, error)
	DeleteOwned(ctx context.Context, id int64, username string) (bool, error)
	RenameDepartment(ctx context.Context, oldName, newName string) (int64, error)
	DistinctDepartments(ctx context.Context) ([]string, error)
	DistinctFullNames(ctx context.Context) ([]string, error)
	UsageByDepartment(ctx context.Context) ([]domain.DepartmentUsage, error)
}

type entryRepository struct {
	db DB
}

// NewEntryRepository instantiates repository.
func NewEntryRepository(db DB) EntryRepository {
	return &entryRepository{db: db}
}

const entryColumns = `id, department, username, COALESCE(full_name, ''), COALESCE(ou_department, ''),
               date, performed_date, minutes, COALESCE(remarks, '')`

var sortExpressions = map[domain.SortColumn]string{
	domain.SortByDate:       "date",
	domain.SortByUser:       "full_name",
	domain.SortByDepartment: "department",
	domain.SortByMinutes:    "minutes",
}

func (r *entryRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	const query = `
        INSERT INTO time_entries (department, username, full_name, ou_department, date, performed_date, minutes, remarks)
        VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),$5,$6,$7,NULLIF($8,''))
        RETURNING id`
	if err := r.db.QueryRow(ctx, query,
		entry.Department,
		entry.Username,
		entry.FullName,
		entry.OUDepartment,
		entry.Date,
		entry.PerformedDate,
		entry.Minutes,
		entry.Remarks,
	).Scan(&entry.ID); err != nil {
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

func (r *entryRepository) List(ctx context.Context, filter EntryFilter) ([]domain.TimeEntry, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Username != nil {
		args = append(args, *filter.Username)
		clauses = append(clauses, fmt.Sprintf("username=$%d", len(args)))
	}
	if filter.FullName != nil {
		args = append(args, *filter.FullName)
		clauses = append(clauses, fmt.Sprintf("full_name=$%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, startOfDay(*filter.DateFrom))
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, startOfDay(*filter.DateTo).AddDate(0, 0, 1))
		clauses = append(clauses, fmt.Sprintf("date < $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM time_entries WHERE %s ORDER BY %s`,
		entryColumns, strings.Join(clauses, " AND "), orderBy(filter.Sort))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// UpdateOwned changes the mutable fields of an entry owned by entry.Username.
// It reports false when no such entry exists.
func (r *entryRepository) UpdateOwned(ctx context.Context, entry *domain.TimeEntry) (bool, error) {
	const query = `
        UPDATE time_entries SET department=$1, minutes=$2, remarks=NULLIF($3,''), performed_date=$4
        WHERE id=$5 AND username=$6`
	cmd, err := r.db.Exec(ctx, query,
		entry.Department,
		entry.Minutes,
		entry.Remarks,
		entry.PerformedDate,
		entry.ID,
		entry.Username,
	)
	if err != nil {
		return false, fmt.Errorf("update time entry: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *entryRepository) DeleteOwned(ctx context.Context, id int64, username string) (bool, error) {
	const query = `DELETE FROM time_entries WHERE id=$1 AND username=$2`
	cmd, err := r.db.Exec(ctx, query, id, username)
	if err != nil {
		return false, fmt.Errorf("delete time entry: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// RenameDepartment rewrites the department of every entry carrying oldName
// and returns how many rows changed.
func (r *entryRepository) RenameDepartment(ctx context.Context, oldName, newName string) (int64, error) {
	const query = `UPDATE time_entries SET department=$1 WHERE department=$2`
	cmd, err := r.db.Exec(ctx, query, newName, oldName)
	if err != nil {
		return 0, fmt.Errorf("rename entry department: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *entryRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT department FROM time_entries ORDER BY department`
	return r.distinct(ctx, query)
}

func (r *entryRepository) DistinctFullNames(ctx context.Context) ([]string, error) {
	const query = `
        SELECT DISTINCT full_name FROM time_entries
        WHERE full_name IS NOT NULL AND full_name <> ''
        ORDER BY full_name`
	return r.distinct(ctx, query)
}

// UsageByDepartment groups all entries system-wide by department name, most used first.
func (r *entryRepository) UsageByDepartment(ctx context.Context) ([]domain.DepartmentUsage, error) {
	const query = `
        SELECT department, COUNT(*), COALESCE(SUM(minutes), 0), MAX(date)
        FROM time_entries
        GROUP BY department
        ORDER BY COUNT(*) DESC, department`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("department usage: %w", err)
	}
	defer rows.Close()

	var result []domain.DepartmentUsage
	for rows.Next() {
		var usage domain.DepartmentUsage
		if err := rows.Scan(&usage.Department, &usage.EntryCount, &usage.TotalMinutes, &usage.LatestDate); err != nil {
			return nil, err
		}
		result = append(result, usage)
	}
	return result, rows.Err()
}

func (r *entryRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct values: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, rows.Err()
}

func orderBy(sort domain.Sort) string {
	column, ok := sortExpressions[sort.Column]
	if !ok {
		column = sortExpressions[domain.SortByDate]
	}
	direction := "ASC"
	if sort.Descending {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, id %s", column, direction, direction)
}

// startOfDay is midnight of t's calendar date in t's own location, so the
// date bounds do not depend on the database session time zone.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func scanEntries(rows pgx.Rows) ([]domain.TimeEntry, error) {
	var result []domain.TimeEntry
	for rows.Next() {
		var entry domain.TimeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Department,
			&entry.Username,
			&entry.FullName,
			&entry.OUDepartment,
			&entry.Date,
			&entry.PerformedDate,
			&entry.Minutes,
			&entry.Remarks,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
