package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/time-service/internal/api/dto"
	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/session"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

// AdminPath is the department administration page.
const AdminPath = "/admin"

const adminPage = "admin"

// AdminHandler serves department administration.
type AdminHandler struct {
	service DepartmentWorkflow
	flashes session.FlashStore
	logger  *zap.Logger
}

// NewAdminHandler constructs handler.
func NewAdminHandler(departments DepartmentWorkflow, flashes session.FlashStore, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{service: departments, flashes: flashes, logger: logger}
}

// Page GET /admin.
func (h *AdminHandler) Page(c *fiber.Ctx) error {
	ctx := c.UserContext()
	depts, err := h.service.List(ctx)
	if err != nil {
		return err
	}
	usage, err := h.service.Usage(ctx)
	if err != nil {
		return err
	}

	page := dto.AdminPage{
		Departments: departmentResponses(depts),
		Usage:       usageResponses(usage),
	}
	flash, err := h.flashes.Pop(ctx, session.Key(adminPage, auth.PrincipalFromContext(c).Username))
	if err != nil {
		h.logger.Warn("flash unavailable", zap.Error(err))
	} else if !flash.Empty() {
		page.Flash = &dto.FlashResponse{Success: flash.Success, Error: flash.Error}
	}
	return c.JSON(fiber.Map{"data": page})
}

// Add POST /admin/add.
func (h *AdminHandler) Add(c *fiber.Ctx) error {
	var form dto.AddDepartmentForm
	if err := c.BodyParser(&form); err != nil {
		return rejectUnreadable(c)
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		return rejectForm(c, err, form)
	}

	dept, err := h.service.Add(c.UserContext(), auth.PrincipalFromContext(c), form.Name)
	if apperrors.IsCode(err, apperrors.CodeConflict) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.FormErrorResponse{
			Errors: map[string]any{"Navn": apperrors.ToDomainError(err).Message},
			Input:  form,
		})
	}
	if err != nil {
		return err
	}
	return h.redirect(c, session.Flash{Success: fmt.Sprintf("Afdelingen '%s' blev tilføjet succesfuldt!", dept.Name)})
}

// Edit POST /admin/edit renames a department and its entries.
func (h *AdminHandler) Edit(c *fiber.Ctx) error {
	var form dto.EditDepartmentForm
	if err := c.BodyParser(&form); err != nil {
		return rejectUnreadable(c)
	}
	form.Normalize()
	if err := form.Validate(); err != nil {
		return rejectForm(c, err, form)
	}

	result, err := h.service.Rename(c.UserContext(), auth.PrincipalFromContext(c), form.ID, form.NewName)
	if err != nil {
		return h.redirectOnUserError(c, err)
	}
	return h.redirect(c, session.Flash{Success: fmt.Sprintf(
		"Afdelingen '%s' blev ændret til '%s' og %d registreringer blev opdateret!",
		result.OldName, result.Department.Name, result.UpdatedEntries,
	)})
}

// Deactivate POST /admin/deactivate/:id.
func (h *AdminHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}
	dept, err := h.service.Deactivate(c.UserContext(), auth.PrincipalFromContext(c), int64(id))
	if err != nil {
		return h.redirectOnUserError(c, err)
	}
	return h.redirect(c, session.Flash{Success: fmt.Sprintf(
		"Afdelingen '%s' blev deaktiveret. Den vil ikke længere være tilgængelig i dropdown menuer.", dept.Name,
	)})
}

// Activate POST /admin/activate/:id.
func (h *AdminHandler) Activate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return apperrors.NewValidationError("invalid id", nil)
	}
	dept, err := h.service.Activate(c.UserContext(), auth.PrincipalFromContext(c), int64(id))
	if err != nil {
		return h.redirectOnUserError(c, err)
	}
	return h.redirect(c, session.Flash{Success: fmt.Sprintf("Afdelingen '%s' blev aktiveret igen.", dept.Name)})
}

// redirectOnUserError turns not-found and duplicate-name failures into a
// flash on the admin page. Anything else propagates.
func (h *AdminHandler) redirectOnUserError(c *fiber.Ctx, err error) error {
	if !apperrors.IsCode(err, apperrors.CodeNotFound) && !apperrors.IsCode(err, apperrors.CodeConflict) {
		return err
	}
	return h.redirect(c, session.Flash{Error: apperrors.ToDomainError(err).Message})
}

func (h *AdminHandler) redirect(c *fiber.Ctx, flash session.Flash) error {
	h.putFlash(c.UserContext(), auth.PrincipalFromContext(c).Username, flash)
	return c.Redirect(AdminPath, fiber.StatusSeeOther)
}

func (h *AdminHandler) putFlash(ctx context.Context, username string, flash session.Flash) {
	if err := h.flashes.Put(ctx, session.Key(adminPage, username), flash); err != nil {
		h.logger.Warn("flash not stored", zap.Error(err))
	}
}
