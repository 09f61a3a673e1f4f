package handlers

import (
	"context"
	"io"

	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/reporting"
	"github.com/spec-kit/time-service/internal/service"
)

// EntryWorkflow is the personal entry workflow as seen by the HTTP layer.
type EntryWorkflow interface {
	List(ctx context.Context, p auth.Principal) ([]domain.TimeEntry, error)
	Create(ctx context.Context, p auth.Principal, in service.EntryInput) (*domain.TimeEntry, error)
	Edit(ctx context.Context, p auth.Principal, id int64, in service.EntryInput) error
	Delete(ctx context.Context, p auth.Principal, id int64) error
	Statistics(ctx context.Context, p auth.Principal) (reporting.Statistics, error)
	ActiveDepartments(ctx context.Context) ([]domain.Department, error)
}

// DepartmentWorkflow is the department admin workflow.
type DepartmentWorkflow interface {
	List(ctx context.Context) ([]domain.Department, error)
	Usage(ctx context.Context) ([]reporting.UsageRow, error)
	Add(ctx context.Context, p auth.Principal, name string) (*domain.Department, error)
	Rename(ctx context.Context, p auth.Principal, id int64, newName string) (*service.RenameResult, error)
	Deactivate(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error)
	Activate(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error)
}

// OverviewWorkflow is the cross-user overview.
type OverviewWorkflow interface {
	Query(ctx context.Context, q service.OverviewQuery) (*service.Overview, error)
	Export(ctx context.Context, q service.OverviewQuery, w io.Writer) error
}

var (
	_ EntryWorkflow      = (*service.EntryService)(nil)
	_ DepartmentWorkflow = (*service.DepartmentService)(nil)
	_ OverviewWorkflow   = (*service.OverviewService)(nil)
)
