package handlers

import (
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/time-service/internal/api/dto"
	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/reporting"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

// rejectForm answers a failed form validation with the field errors and
// the submitted input so the form can be shown again.
func rejectForm(c *fiber.Ctx, err error, input any) error {
	domainErr := apperrors.ToDomainError(apperrors.FromValidation(err))
	return c.Status(domainErr.HTTPStatus).JSON(dto.FormErrorResponse{
		Errors: domainErr.Details,
		Input:  input,
	})
}

var errUnreadableForm = validation.NewError("validation_form_unreadable", "Formularen kunne ikke læses")

// rejectUnreadable answers a body that could not be bound to the form type.
// The raw fields are echoed since there is no typed form to show.
func rejectUnreadable(c *fiber.Ctx) error {
	return rejectForm(c, validation.Errors{"form": errUnreadableForm}, rawInput(c))
}

func rawInput(c *fiber.Ctx) map[string]any {
	input := map[string]any{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		input[string(key)] = string(value)
	})
	if len(input) == 0 && len(c.Body()) > 0 {
		_ = json.Unmarshal(c.Body(), &input)
	}
	return input
}

func entryResponse(e *domain.TimeEntry) dto.EntryResponse {
	return dto.EntryResponse{
		ID:            e.ID,
		Department:    e.Department,
		Username:      e.Username,
		FullName:      e.FullName,
		OUDepartment:  e.OUDepartment,
		Date:          e.Date,
		PerformedDate: e.PerformedDate,
		Minutes:       e.Minutes,
		Remarks:       e.Remarks,
	}
}

func entryResponses(entries []domain.TimeEntry) []dto.EntryResponse {
	items := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, entryResponse(&entries[i]))
	}
	return items
}

func departmentResponses(depts []domain.Department) []dto.DepartmentResponse {
	items := make([]dto.DepartmentResponse, 0, len(depts))
	for _, d := range depts {
		items = append(items, dto.DepartmentResponse{
			ID:        d.ID,
			Name:      d.Name,
			Active:    d.Active,
			CreatedAt: d.CreatedAt,
			CreatedBy: d.CreatedBy,
			UpdatedAt: d.UpdatedAt,
			UpdatedBy: d.UpdatedBy,
		})
	}
	return items
}

func durationResponse(d reporting.Duration) dto.DurationResponse {
	return dto.DurationResponse{TotalMinutes: d.TotalMinutes, Hours: d.Hours, Minutes: d.Minutes}
}

func totalsResponse(t reporting.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		Count:            t.Count,
		DurationResponse: durationResponse(t.Duration),
		DecimalHours:     t.DecimalHours,
	}
}

func statisticsResponse(s reporting.Statistics) dto.StatisticsResponse {
	shares := make([]dto.DepartmentShareResponse, 0, len(s.Departments))
	for _, share := range s.Departments {
		shares = append(shares, dto.DepartmentShareResponse{
			Department:       share.Department,
			Count:            share.Count,
			DurationResponse: durationResponse(share.Duration),
			Percent:          share.Percent,
		})
	}
	resp := dto.StatisticsResponse{
		Totals:          totalsResponse(s.Totals),
		Workdays:        s.Workdays,
		Average:         durationResponse(s.Average),
		Departments:     shares,
		DepartmentCount: s.DepartmentCount,
		MostUsed:        s.MostUsed,
	}
	if s.MostRecent != nil {
		recent := entryResponse(s.MostRecent)
		resp.MostRecent = &recent
	}
	if s.Earliest != nil {
		earliest := entryResponse(s.Earliest)
		resp.Earliest = &earliest
	}
	return resp
}

func usageResponses(rows []reporting.UsageRow) []dto.UsageResponse {
	items := make([]dto.UsageResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.UsageResponse{
			Department:       r.Department,
			EntryCount:       r.EntryCount,
			DurationResponse: durationResponse(r.Duration),
			LatestDate:       r.LatestDate,
		})
	}
	return items
}
