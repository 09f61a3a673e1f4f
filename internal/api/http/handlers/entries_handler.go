package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/time-service/internal/api/dto"
	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/service"
)

// EntriesPath is the personal entry page every entry mutation returns to.
const EntriesPath = "/registreringer"

// EntriesHandler serves the personal entry pages.
type EntriesHandler struct {
	service EntryWorkflow
}

// NewEntriesHandler constructs handler.
func NewEntriesHandler(entries EntryWorkflow) *EntriesHandler {
	return &EntriesHandler{service: entries}
}

// List GET /registreringer.
func (h *EntriesHandler) List(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	entries, err := h.service.List(c.UserContext(), principal)
	if err != nil {
		return err
	}
	depts, err := h.service.ActiveDepartments(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EntriesPage{
		Username:    principal.Username,
		FullName:    principal.DisplayName,
		Entries:     entryResponses(entries),
		Departments: departmentResponses(depts),
	}})
}

// Create POST /registreringer/opret.
func (h *EntriesHandler) Create(c *fiber.Ctx) error {
	form, ok := parseEntryForm(c)
	if !ok {
		return rejectUnreadable(c)
	}
	if err := form.Validate(); err != nil {
		return rejectForm(c, err, form)
	}
	if _, err := h.service.Create(c.UserContext(), auth.PrincipalFromContext(c), entryInput(form)); err != nil {
		return err
	}
	return c.Redirect(EntriesPath, fiber.StatusSeeOther)
}

// Edit POST /registreringer/rediger.
func (h *EntriesHandler) Edit(c *fiber.Ctx) error {
	form, ok := parseEntryForm(c)
	if !ok {
		return rejectUnreadable(c)
	}
	if err := form.Validate(); err != nil {
		return rejectForm(c, err, form)
	}
	if err := h.service.Edit(c.UserContext(), auth.PrincipalFromContext(c), form.ID, entryInput(form)); err != nil {
		return err
	}
	return c.Redirect(EntriesPath, fiber.StatusSeeOther)
}

// Delete POST /registreringer/slet.
func (h *EntriesHandler) Delete(c *fiber.Ctx) error {
	var form dto.EntryIDForm
	if err := c.BodyParser(&form); err != nil {
		return rejectUnreadable(c)
	}
	if err := h.service.Delete(c.UserContext(), auth.PrincipalFromContext(c), form.ID); err != nil {
		return err
	}
	return c.Redirect(EntriesPath, fiber.StatusSeeOther)
}

// Statistics GET /statistik.
func (h *EntriesHandler) Statistics(c *fiber.Ctx) error {
	principal := auth.PrincipalFromContext(c)
	stats, err := h.service.Statistics(c.UserContext(), principal)
	if err != nil {
		return err
	}
	resp := statisticsResponse(stats)
	resp.Username = principal.Username
	resp.FullName = principal.DisplayName
	return c.JSON(fiber.Map{"data": resp})
}

func parseEntryForm(c *fiber.Ctx) (dto.EntryForm, bool) {
	var form dto.EntryForm
	if err := c.BodyParser(&form); err != nil {
		return form, false
	}
	form.Normalize()
	return form, true
}

func entryInput(form dto.EntryForm) service.EntryInput {
	return service.EntryInput{
		Department:    form.Department,
		Minutes:       form.MinutesValue(),
		Remarks:       form.Remarks,
		PerformedDate: form.PerformedAt(),
	}
}
