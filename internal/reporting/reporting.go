// Package reporting computes totals, averages and department breakdowns
// over slices of time entries. Every function is pure; callers load and
// order the entries.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/time-service/internal/domain"
)

const (
	minutesPerHour    = 60
	minutesPerWorkday = 480
)

// Duration is a minute count split into whole hours and remaining minutes.
type Duration struct {
	TotalMinutes int
	Hours        int
	Minutes      int
}

// Split divides total minutes into hours and remainder.
func Split(total int) Duration {
	return Duration{
		TotalMinutes: total,
		Hours:        total / minutesPerHour,
		Minutes:      total % minutesPerHour,
	}
}

// DecimalHours is total/60 rounded half-to-even to one decimal.
func DecimalHours(total int) float64 {
	return ratio(int64(total), minutesPerHour, 1)
}

// Workdays is total/480 rounded half-to-even to two decimals.
func Workdays(total int) float64 {
	return ratio(int64(total), minutesPerWorkday, 2)
}

// Percent is part/whole*100 rounded half-to-even to one decimal. A zero whole yields 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(whole))).
		RoundBank(1).
		InexactFloat64()
}

func ratio(num, den int64, places int32) float64 {
	return decimal.NewFromInt(num).Div(decimal.NewFromInt(den)).RoundBank(places).InexactFloat64()
}

// Totals summarizes a set of entries.
type Totals struct {
	Count int
	Duration
	DecimalHours float64
}

// Summarize returns count and minute totals for entries.
func Summarize(entries []domain.TimeEntry) Totals {
	total := SumMinutes(entries)
	return Totals{
		Count:        len(entries),
		Duration:     Split(total),
		DecimalHours: DecimalHours(total),
	}
}

// SumMinutes adds up the minutes of all entries.
func SumMinutes(entries []domain.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Minutes
	}
	return total
}

// DepartmentShare is one row of a per-department breakdown.
type DepartmentShare struct {
	Department string
	Count      int
	Duration
	Percent float64
}

// Breakdown groups entries by department name, largest minute total first.
// It returns nil when the entries add up to zero minutes.
func Breakdown(entries []domain.TimeEntry) []DepartmentShare {
	total := SumMinutes(entries)
	if total == 0 {
		return nil
	}

	index := make(map[string]int)
	var shares []DepartmentShare
	for _, e := range entries {
		i, ok := index[e.Department]
		if !ok {
			i = len(shares)
			index[e.Department] = i
			shares = append(shares, DepartmentShare{Department: e.Department})
		}
		shares[i].Count++
		shares[i].TotalMinutes += e.Minutes
	}

	for i := range shares {
		minutes := shares[i].TotalMinutes
		shares[i].Duration = Split(minutes)
		shares[i].Percent = Percent(minutes, total)
	}

	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].TotalMinutes > shares[b].TotalMinutes
	})
	return shares
}

// AveragePerEntry truncates the mean to whole minutes before splitting it,
// so 59.9 minutes reports as 0h 59m.
func AveragePerEntry(entries []domain.TimeEntry) Duration {
	if len(entries) == 0 {
		return Duration{}
	}
	return Split(SumMinutes(entries) / len(entries))
}

// Extremes holds the newest and oldest entry of a date-descending slice.
type Extremes struct {
	MostRecent *domain.TimeEntry
	Earliest   *domain.TimeEntry
}

// DateExtremes expects entries ordered by date descending and takes the
// first and last element. Entries sharing a date keep the caller's order.
func DateExtremes(entries []domain.TimeEntry) Extremes {
	if len(entries) == 0 {
		return Extremes{}
	}
	first := entries[0]
	last := entries[len(entries)-1]
	return Extremes{MostRecent: &first, Earliest: &last}
}

// Statistics is the personal statistics view.
type Statistics struct {
	Totals
	Workdays        float64
	Average         Duration
	Departments     []DepartmentShare
	DepartmentCount int
	MostUsed        string
	Extremes
}

// BuildStatistics computes the personal statistics for entries ordered by
// date descending. An empty slice yields the zero value.
func BuildStatistics(entries []domain.TimeEntry) Statistics {
	if len(entries) == 0 {
		return Statistics{}
	}

	totals := Summarize(entries)
	shares := Breakdown(entries)
	stats := Statistics{
		Totals:          totals,
		Workdays:        Workdays(totals.TotalMinutes),
		Average:         AveragePerEntry(entries),
		Departments:     shares,
		DepartmentCount: len(shares),
		Extremes:        DateExtremes(entries),
	}
	if len(shares) > 0 {
		stats.MostUsed = shares[0].Department
	}
	return stats
}

// UsageRow decorates a store usage aggregate with its hour split.
type UsageRow struct {
	Department string
	EntryCount int
	Duration
	LatestDate time.Time
}

// Usage converts store aggregates into rows, most entries first.
func Usage(usage []domain.DepartmentUsage) []UsageRow {
	rows := make([]UsageRow, 0, len(usage))
	for _, u := range usage {
		rows = append(rows, UsageRow{
			Department: u.Department,
			EntryCount: u.EntryCount,
			Duration:   Split(u.TotalMinutes),
			LatestDate: u.LatestDate,
		})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].EntryCount > rows[b].EntryCount
	})
	return rows
}
