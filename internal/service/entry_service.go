package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/reporting"
	"github.com/spec-kit/time-service/internal/repository"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

// EntryService implements the personal entry workflow. Every operation is
// scoped to the principal passed in.
type EntryService struct {
	entries     repository.EntryRepository
	departments repository.DepartmentRepository
	logger      *zap.Logger
	now         func() time.Time
}

// EntryDependencies encapsulates what the personal entry workflow needs.
type EntryDependencies struct {
	Repos  repository.Repositories
	Logger *zap.Logger
	Now    func() time.Time
}

// EntryInput carries the user-editable fields of an entry.
type EntryInput struct {
	Department    string
	Minutes       int
	Remarks       string
	PerformedDate *time.Time
}

// NewEntryService constructs the service.
func NewEntryService(deps EntryDependencies) *EntryService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryService{
		entries:     deps.Repos.Entries(),
		departments: deps.Repos.Departments(),
		logger:      logger,
		now:         now,
	}
}

// List returns the principal's entries, newest first.
func (s *EntryService) List(ctx context.Context, p auth.Principal) ([]domain.TimeEntry, error) {
	entries, err := s.entries.List(ctx, repository.EntryFilter{
		Username: &p.Username,
		Sort:     domain.DefaultSort,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// Create stores a new entry owned by p and dated now. A principal whose
// names do not fit the entry columns is rejected before anything is written.
func (s *EntryService) Create(ctx context.Context, p auth.Principal, in EntryInput) (*domain.TimeEntry, error) {
	if err := validateOwner(p); err != nil {
		return nil, err
	}
	entry := &domain.TimeEntry{
		Department:    in.Department,
		Username:      p.Username,
		FullName:      p.DisplayName,
		Date:          s.now(),
		PerformedDate: in.PerformedDate,
		Minutes:       in.Minutes,
		Remarks:       in.Remarks,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	return entry, nil
}

func validateOwner(p auth.Principal) error {
	return apperrors.FromValidation(validation.Errors{
		"username": validation.Validate(p.Username,
			validation.RuneLength(0, domain.MaxUsernameLength).Error("Brugernavn må maksimalt være 50 tegn"),
		),
		"full_name": validation.Validate(p.DisplayName,
			validation.RuneLength(0, domain.MaxFullNameLength).Error("Navn må maksimalt være 100 tegn"),
		),
	}.Filter())
}

// Edit updates an entry owned by p. An id that does not exist or belongs to
// someone else is ignored without an error.
func (s *EntryService) Edit(ctx context.Context, p auth.Principal, id int64, in EntryInput) error {
	updated, err := s.entries.UpdateOwned(ctx, &domain.TimeEntry{
		ID:            id,
		Username:      p.Username,
		Department:    in.Department,
		Minutes:       in.Minutes,
		Remarks:       in.Remarks,
		PerformedDate: in.PerformedDate,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	if !updated {
		s.logger.Debug("edit ignored: entry not owned", zap.Int64("entry_id", id), zap.String("user", p.Username))
	}
	return nil
}

// Delete removes an entry owned by p, with the same silent policy as Edit.
func (s *EntryService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	deleted, err := s.entries.DeleteOwned(ctx, id, p.Username)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		s.logger.Debug("delete ignored: entry not owned", zap.Int64("entry_id", id), zap.String("user", p.Username))
	}
	return nil
}

// Statistics computes the personal statistics view for p.
func (s *EntryService) Statistics(ctx context.Context, p auth.Principal) (reporting.Statistics, error) {
	entries, err := s.List(ctx, p)
	if err != nil {
		return reporting.Statistics{}, err
	}
	return reporting.BuildStatistics(entries), nil
}

// ActiveDepartments lists the departments offered when logging time.
func (s *EntryService) ActiveDepartments(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.ListActive(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return depts, nil
}
