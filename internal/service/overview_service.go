package service

import (
	"context"
	"io"
	"time"

	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/export"
	"github.com/spec-kit/time-service/internal/reporting"
	"github.com/spec-kit/time-service/internal/repository"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

// OverviewQuery holds the optional cross-user filters and the sort order.
type OverviewQuery struct {
	From       *time.Time
	To         *time.Time
	Department string
	FullName   string
	Sort       domain.Sort
}

// Overview is a filtered, sorted listing across all users.
type Overview struct {
	Entries     []domain.TimeEntry
	Totals      reporting.Totals
	Departments []string
	Users       []string
}

// OverviewService implements the cross-user overview. It applies no
// ownership scoping.
type OverviewService struct {
	entries repository.EntryRepository
}

// NewOverviewService constructs the service.
func NewOverviewService(entries repository.EntryRepository) *OverviewService {
	return &OverviewService{entries: entries}
}

// Query lists matching entries with totals and the filter pick-lists.
func (s *OverviewService) Query(ctx context.Context, q OverviewQuery) (*Overview, error) {
	entries, err := s.entries.List(ctx, toFilter(q))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	departments, err := s.entries.DistinctDepartments(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	users, err := s.entries.DistinctFullNames(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &Overview{
		Entries:     entries,
		Totals:      reporting.Summarize(entries),
		Departments: departments,
		Users:       users,
	}, nil
}

// Export writes the matching entries as an XLSX workbook.
func (s *OverviewService) Export(ctx context.Context, q OverviewQuery, w io.Writer) error {
	entries, err := s.entries.List(ctx, toFilter(q))
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := export.WriteOverview(w, entries, reporting.Summarize(entries)); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func toFilter(q OverviewQuery) repository.EntryFilter {
	filter := repository.EntryFilter{
		DateFrom: q.From,
		DateTo:   q.To,
		Sort:     q.Sort,
	}
	if q.Department != "" {
		filter.Department = &q.Department
	}
	if q.FullName != "" {
		filter.FullName = &q.FullName
	}
	if filter.Sort.Column == "" {
		filter.Sort = domain.DefaultSort
	}
	return filter
}
