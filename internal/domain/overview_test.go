package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortColumn(t *testing.T) {
	assert.Equal(t, SortByUser, ParseSortColumn("Bruger"))
	assert.Equal(t, SortByMinutes, ParseSortColumn("Tid"))
	assert.Equal(t, SortByDate, ParseSortColumn(""))
	assert.Equal(t, SortByDate, ParseSortColumn("tid"))
}

func TestSortToggle(t *testing.T) {
	asc := Sort{Column: SortByDepartment, Descending: false}
	assert.Equal(t, Sort{Column: SortByDepartment, Descending: true}, asc.Toggle(SortByDepartment))

	desc := Sort{Column: SortByDepartment, Descending: true}
	assert.Equal(t, Sort{Column: SortByDepartment, Descending: false}, desc.Toggle(SortByDepartment))

	assert.Equal(t, Sort{Column: SortByMinutes, Descending: true}, asc.Toggle(SortByMinutes))
	assert.Equal(t, Sort{Column: SortByUser, Descending: true}, DefaultSort.Toggle(SortByUser))
}
