package domain

import "time"

// Field limits for TimeEntry.
const (
	MaxUsernameLength     = 50
	MaxFullNameLength     = 100
	MaxOUDepartmentLength = 100
	MaxRemarksLength      = 1000
)

// TimeEntry is one logged unit of work owned by Username.
type TimeEntry struct {
	ID            int64
	Department    string
	Username      string
	FullName      string
	OUDepartment  string
	Date          time.Time
	PerformedDate *time.Time
	Minutes       int
	Remarks       string
}

// OwnedBy reports whether username owns the entry.
func (e TimeEntry) OwnedBy(username string) bool {
	return e.Username == username
}
