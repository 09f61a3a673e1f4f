package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/reporting"
	"github.com/spec-kit/time-service/internal/repository"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

// User-facing department errors.
const (
	MsgDepartmentExists   = "En afdeling med dette navn eksisterer allerede."
	MsgDepartmentNotFound = "Afdelingen blev ikke fundet."
)

const uniqueViolation = "23505"

// DepartmentService implements the department admin workflow.
type DepartmentService struct {
	store  repository.UnitOfWork
	logger *zap.Logger
	now    func() time.Time
}

// DepartmentDependencies encapsulates what the admin workflow needs.
type DepartmentDependencies struct {
	Store  repository.UnitOfWork
	Logger *zap.Logger
	Now    func() time.Time
}

// RenameResult reports a completed rename and its cascade.
type RenameResult struct {
	Department     *domain.Department
	OldName        string
	UpdatedEntries int64
}

// NewDepartmentService constructs the service.
func NewDepartmentService(deps DepartmentDependencies) *DepartmentService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{store: deps.Store, logger: logger, now: now}
}

// List returns all departments, active ones first.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.store.Departments().List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}

// Usage aggregates every entry by department name across all users.
func (s *DepartmentService) Usage(ctx context.Context) ([]reporting.UsageRow, error) {
	usage, err := s.store.Entries().UsageByDepartment(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return reporting.Usage(usage), nil
}

// Add creates an active department. Names are trimmed and must be unique
// ignoring case.
func (s *DepartmentService) Add(ctx context.Context, p auth.Principal, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	exists, err := s.store.Departments().NameExists(ctx, name, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if exists {
		return nil, duplicateName(name)
	}

	dept := &domain.Department{
		Name:      name,
		Active:    true,
		CreatedAt: s.now(),
		CreatedBy: p.Username,
	}
	if err := s.store.Departments().Create(ctx, dept); err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateName(name)
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("department added", zap.Int64("department_id", dept.ID), zap.String("name", name), zap.String("by", p.Username))
	return dept, nil
}

// Rename changes a department's name and rewrites every entry that carried
// the old name. Both writes commit together or not at all.
func (s *DepartmentService) Rename(ctx context.Context, p auth.Principal, id int64, newName string) (*RenameResult, error) {
	newName = strings.TrimSpace(newName)
	var result RenameResult

	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		dept, err := getDepartment(ctx, repos, id)
		if err != nil {
			return err
		}

		exists, err := repos.Departments().NameExists(ctx, newName, id)
		if err != nil {
			return err
		}
		if exists {
			return duplicateName(newName)
		}

		oldName := dept.Name
		dept.Name = newName
		dept.Touch(p.Username, s.now())
		if err := repos.Departments().Update(ctx, dept); err != nil {
			return err
		}

		updated, err := repos.Entries().RenameDepartment(ctx, oldName, newName)
		if err != nil {
			return err
		}

		result = RenameResult{Department: dept, OldName: oldName, UpdatedEntries: updated}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, duplicateName(newName)
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("department renamed",
		zap.Int64("department_id", id),
		zap.String("from", result.OldName),
		zap.String("to", newName),
		zap.Int64("entries_updated", result.UpdatedEntries),
		zap.String("by", p.Username),
	)
	return &result, nil
}

// Deactivate hides a department from entry pickers. Entries are untouched.
func (s *DepartmentService) Deactivate(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error) {
	return s.setActive(ctx, p, id, false)
}

// Activate makes a department selectable again.
func (s *DepartmentService) Activate(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error) {
	return s.setActive(ctx, p, id, true)
}

func (s *DepartmentService) setActive(ctx context.Context, p auth.Principal, id int64, active bool) (*domain.Department, error) {
	dept, err := getDepartment(ctx, s.store, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	dept.Active = active
	dept.Touch(p.Username, s.now())
	if err := s.store.Departments().Update(ctx, dept); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound(MsgDepartmentNotFound, map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("department active flag changed", zap.Int64("department_id", id), zap.Bool("active", active), zap.String("by", p.Username))
	return dept, nil
}

func getDepartment(ctx context.Context, repos repository.Repositories, id int64) (*domain.Department, error) {
	dept, err := repos.Departments().GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound(MsgDepartmentNotFound, map[string]any{"id": id})
	}
	return dept, err
}

func duplicateName(name string) error {
	return apperrors.NewConflict(MsgDepartmentExists, map[string]any{"name": name})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
