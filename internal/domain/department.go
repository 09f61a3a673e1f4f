package domain

import "time"

// MaxDepartmentNameLength bounds Department.Name and TimeEntry.Department.
const MaxDepartmentNameLength = 100

// Department is a master-list name that time entries are attributed to.
// Entries copy the name, so a rename has to rewrite them.
type Department struct {
	ID        int64
	Name      string
	Active    bool
	CreatedAt time.Time
	CreatedBy string
	UpdatedAt *time.Time
	UpdatedBy string
}

// Touch records a mutation by the given principal.
func (d *Department) Touch(by string, at time.Time) {
	d.UpdatedAt = &at
	d.UpdatedBy = by
}

// DepartmentUsage aggregates every entry that carries one department name,
// regardless of whether that name is still in the master list.
type DepartmentUsage struct {
	Department   string
	EntryCount   int
	TotalMinutes int
	LatestDate   time.Time
}
