package handlers

import (
	"context"
	"io"

	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/reporting"
	"github.com/spec-kit/time-service/internal/service"
)

type entryWorkflowStub struct {
	listFn        func(ctx context.Context, p auth.Principal) ([]domain.TimeEntry, error)
	createFn      func(ctx context.Context, p auth.Principal, in service.EntryInput) (*domain.TimeEntry, error)
	editFn        func(ctx context.Context, p auth.Principal, id int64, in service.EntryInput) error
	deleteFn      func(ctx context.Context, p auth.Principal, id int64) error
	statisticsFn  func(ctx context.Context, p auth.Principal) (reporting.Statistics, error)
	departmentsFn func(ctx context.Context) ([]domain.Department, error)
}

func (s *entryWorkflowStub) List(ctx context.Context, p auth.Principal) ([]domain.TimeEntry, error) {
	return s.listFn(ctx, p)
}

func (s *entryWorkflowStub) Create(ctx context.Context, p auth.Principal, in service.EntryInput) (*domain.TimeEntry, error) {
	return s.createFn(ctx, p, in)
}

func (s *entryWorkflowStub) Edit(ctx context.Context, p auth.Principal, id int64, in service.EntryInput) error {
	return s.editFn(ctx, p, id, in)
}

func (s *entryWorkflowStub) Delete(ctx context.Context, p auth.Principal, id int64) error {
	return s.deleteFn(ctx, p, id)
}

func (s *entryWorkflowStub) Statistics(ctx context.Context, p auth.Principal) (reporting.Statistics, error) {
	return s.statisticsFn(ctx, p)
}

func (s *entryWorkflowStub) ActiveDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.departmentsFn(ctx)
}

type departmentWorkflowStub struct {
	listFn       func(ctx context.Context) ([]domain.Department, error)
	usageFn      func(ctx context.Context) ([]reporting.UsageRow, error)
	addFn        func(ctx context.Context, p auth.Principal, name string) (*domain.Department, error)
	renameFn     func(ctx context.Context, p auth.Principal, id int64, newName string) (*service.RenameResult, error)
	deactivateFn func(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error)
	activateFn   func(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error)
}

func (s *departmentWorkflowStub) List(ctx context.Context) ([]domain.Department, error) {
	return s.listFn(ctx)
}

func (s *departmentWorkflowStub) Usage(ctx context.Context) ([]reporting.UsageRow, error) {
	return s.usageFn(ctx)
}

func (s *departmentWorkflowStub) Add(ctx context.Context, p auth.Principal, name string) (*domain.Department, error) {
	return s.addFn(ctx, p, name)
}

func (s *departmentWorkflowStub) Rename(ctx context.Context, p auth.Principal, id int64, newName string) (*service.RenameResult, error) {
	return s.renameFn(ctx, p, id, newName)
}

func (s *departmentWorkflowStub) Deactivate(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error) {
	return s.deactivateFn(ctx, p, id)
}

func (s *departmentWorkflowStub) Activate(ctx context.Context, p auth.Principal, id int64) (*domain.Department, error) {
	return s.activateFn(ctx, p, id)
}

type overviewWorkflowStub struct {
	queryFn  func(ctx context.Context, q service.OverviewQuery) (*service.Overview, error)
	exportFn func(ctx context.Context, q service.OverviewQuery, w io.Writer) error
}

func (s *overviewWorkflowStub) Query(ctx context.Context, q service.OverviewQuery) (*service.Overview, error) {
	return s.queryFn(ctx, q)
}

func (s *overviewWorkflowStub) Export(ctx context.Context, q service.OverviewQuery, w io.Writer) error {
	return s.exportFn(ctx, q, w)
}
