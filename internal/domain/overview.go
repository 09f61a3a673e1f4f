package domain

// SortColumn names a sortable overview column. Values match the SortBy query parameter.
type SortColumn string

const (
	SortByDate       SortColumn = "Dato"
	SortByUser       SortColumn = "Bruger"
	SortByDepartment SortColumn = "Afdeling"
	SortByMinutes    SortColumn = "Tid"
)

// SortColumns lists the overview columns in display order.
var SortColumns = []SortColumn{SortByDate, SortByUser, SortByDepartment, SortByMinutes}

// ParseSortColumn maps a query value to a column, falling back to date.
func ParseSortColumn(raw string) SortColumn {
	switch SortColumn(raw) {
	case SortByUser, SortByDepartment, SortByMinutes:
		return SortColumn(raw)
	default:
		return SortByDate
	}
}

// Sort is a column plus direction.
type Sort struct {
	Column     SortColumn
	Descending bool
}

// DefaultSort is newest first.
var DefaultSort = Sort{Column: SortByDate, Descending: true}

// Toggle returns the sort produced by selecting column: the current column
// flips direction, any other column starts descending.
func (s Sort) Toggle(column SortColumn) Sort {
	if s.Column == column {
		return Sort{Column: column, Descending: !s.Descending}
	}
	return Sort{Column: column, Descending: true}
}
