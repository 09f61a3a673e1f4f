package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/spec-kit/time-service/internal/domain"
)

const departmentTooLong = "Afdelingsnavn må maksimalt være 100 tegn"

// AddDepartmentForm adds a department.
type AddDepartmentForm struct {
	Name string `json:"Navn" form:"Navn"`
}

// Normalize trims the submitted name.
func (f *AddDepartmentForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

// Validate requires a name of at most 100 characters.
func (f AddDepartmentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name,
			validation.Required.Error("Afdelingsnavn er påkrævet"),
			validation.RuneLength(0, domain.MaxDepartmentNameLength).Error(departmentTooLong),
		),
	)
}

// EditDepartmentForm renames a department.
type EditDepartmentForm struct {
	ID      int64  `json:"Id" form:"Id"`
	NewName string `json:"NytNavn" form:"NytNavn"`
}

// Normalize trims the submitted name.
func (f *EditDepartmentForm) Normalize() {
	f.NewName = strings.TrimSpace(f.NewName)
}

// Validate requires a new name of at most 100 characters.
func (f EditDepartmentForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.NewName,
			validation.Required.Error("Nyt afdelingsnavn er påkrævet"),
			validation.RuneLength(0, domain.MaxDepartmentNameLength).Error(departmentTooLong),
		),
	)
}

// DepartmentResponse is one master-list department.
type DepartmentResponse struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	UpdatedBy string     `json:"updated_by,omitempty"`
}

// UsageResponse aggregates all entries carrying one department name.
type UsageResponse struct {
	Department string `json:"department"`
	EntryCount int    `json:"entry_count"`
	DurationResponse
	LatestDate time.Time `json:"latest_date"`
}

// AdminPage is the department administration page.
type AdminPage struct {
	Departments []DepartmentResponse `json:"departments"`
	Usage       []UsageResponse      `json:"usage"`
	Flash       *FlashResponse       `json:"flash,omitempty"`
}
