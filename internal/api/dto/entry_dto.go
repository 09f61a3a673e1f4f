package dto

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/spec-kit/time-service/internal/domain"
)

// DateLayout is the form and query format for calendar dates.
const DateLayout = "2006-01-02"

// EntryForm is the create/edit form of the personal entry page.
type EntryForm struct {
	ID            int64  `json:"Id" form:"Id"`
	Department    string `json:"Afdeling" form:"Afdeling"`
	Minutes       string `json:"Minutter" form:"Minutter"`
	Remarks       string `json:"Bemaerkninger" form:"Bemaerkninger"`
	PerformedDate string `json:"UdfoertDato" form:"UdfoertDato"`
}

// Normalize trims the submitted values.
func (f *EntryForm) Normalize() {
	f.Department = strings.TrimSpace(f.Department)
	f.Minutes = strings.TrimSpace(f.Minutes)
	f.Remarks = strings.TrimSpace(f.Remarks)
	f.PerformedDate = strings.TrimSpace(f.PerformedDate)
}

// Validate checks the form against the entry field rules. Minutter must be
// a whole number of at least 0.
func (f EntryForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Department,
			validation.Required.Error("Afdeling er påkrævet"),
			validation.RuneLength(0, domain.MaxDepartmentNameLength).Error("Afdeling må maksimalt være 100 tegn"),
		),
		validation.Field(&f.Minutes,
			validation.Required.Error("Minutter er påkrævet"),
			validation.By(wholeMinutes),
		),
		validation.Field(&f.Remarks,
			validation.RuneLength(0, domain.MaxRemarksLength).Error("Bemærkninger må maksimalt være 1000 tegn"),
		),
		validation.Field(&f.PerformedDate,
			validation.Date(DateLayout).Error("Udført dato skal have formatet åååå-mm-dd"),
		),
	)
}

// MinutesValue returns the parsed minutes. Call after Validate.
func (f EntryForm) MinutesValue() int {
	n, _ := strconv.Atoi(f.Minutes)
	return n
}

var errWholeMinutes = validation.NewError("validation_whole_minutes", "Minutter skal være et helt tal på 0 eller derover")

func wholeMinutes(value interface{}) error {
	raw, _ := value.(string)
	if n, err := strconv.Atoi(raw); err != nil || n < 0 {
		return errWholeMinutes
	}
	return nil
}

// PerformedAt parses the optional performed date. Call after Validate.
func (f EntryForm) PerformedAt() *time.Time {
	if f.PerformedDate == "" {
		return nil
	}
	parsed, err := time.Parse(DateLayout, f.PerformedDate)
	if err != nil {
		return nil
	}
	return &parsed
}

// EntryIDForm carries the target of a delete.
type EntryIDForm struct {
	ID int64 `json:"Id" form:"Id"`
}

// EntryResponse is one time entry.
type EntryResponse struct {
	ID            int64      `json:"id"`
	Department    string     `json:"department"`
	Username      string     `json:"username"`
	FullName      string     `json:"full_name,omitempty"`
	OUDepartment  string     `json:"ou_department,omitempty"`
	Date          time.Time  `json:"date"`
	PerformedDate *time.Time `json:"performed_date,omitempty"`
	Minutes       int        `json:"minutes"`
	Remarks       string     `json:"remarks,omitempty"`
}

// DurationResponse is a minute total with its hour split.
type DurationResponse struct {
	TotalMinutes int `json:"total_minutes"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
}

// TotalsResponse summarizes a listing.
type TotalsResponse struct {
	Count int `json:"count"`
	DurationResponse
	DecimalHours float64 `json:"decimal_hours"`
}

// EntriesPage is the personal entry page.
type EntriesPage struct {
	Username    string               `json:"username"`
	FullName    string               `json:"full_name"`
	Entries     []EntryResponse      `json:"entries"`
	Departments []DepartmentResponse `json:"departments"`
}

// FormErrorResponse re-renders a rejected form with the submitted input.
type FormErrorResponse struct {
	Errors map[string]any `json:"errors"`
	Input  any            `json:"input"`
}

// FlashResponse is a one-shot status message.
type FlashResponse struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DepartmentShareResponse is one row of the statistics breakdown.
type DepartmentShareResponse struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
	DurationResponse
	Percent float64 `json:"percent"`
}

// StatisticsResponse is the personal statistics page.
type StatisticsResponse struct {
	Username        string                    `json:"username"`
	FullName        string                    `json:"full_name"`
	Totals          TotalsResponse            `json:"totals"`
	Workdays        float64                   `json:"workdays"`
	Average         DurationResponse          `json:"average_per_entry"`
	Departments     []DepartmentShareResponse `json:"departments"`
	DepartmentCount int                       `json:"department_count"`
	MostUsed        string                    `json:"most_used_department,omitempty"`
	MostRecent      *EntryResponse            `json:"most_recent,omitempty"`
	Earliest        *EntryResponse            `json:"earliest,omitempty"`
}
