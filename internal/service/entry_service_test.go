package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/time-service/internal/auth"
	"github.com/spec-kit/time-service/internal/domain"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

var (
	alice = auth.ParsePrincipal(`CORP\alice`)
	bob   = auth.ParsePrincipal(`CORP\bob`)
	fixed = time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)
)

func newEntryService(db *memoryDB) *EntryService {
	return NewEntryService(EntryDependencies{Repos: db, Now: func() time.Time { return fixed }})
}

func TestEntryCreateStampsPrincipalAndDate(t *testing.T) {
	db := newMemoryDB()
	svc := newEntryService(db)

	entry, err := svc.Create(context.Background(), alice, EntryInput{Department: "IT", Minutes: 45, Remarks: "patching"})

	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, `CORP\alice`, entry.Username)
	assert.Equal(t, "alice", entry.FullName)
	assert.Equal(t, fixed, entry.Date)
	assert.Nil(t, entry.PerformedDate)
	require.Len(t, db.entries, 1)
}

func TestEntryCreateRejectsOversizedPrincipal(t *testing.T) {
	db := newMemoryDB()
	svc := newEntryService(db)
	in := EntryInput{Department: "IT", Minutes: 10}

	atLimit := auth.Principal{Username: strings.Repeat("å", 50), DisplayName: strings.Repeat("å", 100)}
	_, err := svc.Create(context.Background(), atLimit, in)
	require.NoError(t, err)

	longUser := auth.ParsePrincipal(`CORP\` + strings.Repeat("a", 46))
	_, err = svc.Create(context.Background(), longUser, in)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Contains(t, apperrors.ToDomainError(err).Details, "username")

	longName := auth.Principal{Username: "bob", DisplayName: strings.Repeat("b", 101)}
	_, err = svc.Create(context.Background(), longName, in)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidation))
	assert.Contains(t, apperrors.ToDomainError(err).Details, "full_name")

	assert.Len(t, db.entries, 1)
}

func TestEntryListIsScopedToPrincipal(t *testing.T) {
	db := newMemoryDB()
	db.addEntry(domain.TimeEntry{Username: alice.Username, Department: "IT", Minutes: 10, Date: fixed.Add(-time.Hour)})
	db.addEntry(domain.TimeEntry{Username: bob.Username, Department: "HR", Minutes: 20, Date: fixed})
	db.addEntry(domain.TimeEntry{Username: alice.Username, Department: "HR", Minutes: 30, Date: fixed})
	svc := newEntryService(db)

	entries, err := svc.List(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, e.OwnedBy(alice.Username))
	}
	assert.Equal(t, 30, entries[0].Minutes, "newest first")
}

func TestEntryDeleteOfForeignEntryIsSilent(t *testing.T) {
	db := newMemoryDB()
	db.addEntry(domain.TimeEntry{ID: 7, Username: alice.Username, Department: "IT", Minutes: 60, Date: fixed})
	svc := newEntryService(db)

	err := svc.Delete(context.Background(), bob, 7)

	require.NoError(t, err)
	require.Len(t, db.entries, 1)
	assert.Equal(t, int64(7), db.entries[0].ID)
}

func TestEntryEditOnlyTouchesOwnedEntry(t *testing.T) {
	db := newMemoryDB()
	db.addEntry(domain.TimeEntry{ID: 3, Username: alice.Username, FullName: "alice", Department: "IT", Minutes: 60, Date: fixed})
	svc := newEntryService(db)
	ctx := context.Background()
	performed := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Edit(ctx, bob, 3, EntryInput{Department: "HR", Minutes: 1}))
	assert.Equal(t, "IT", db.entries[0].Department)

	require.NoError(t, svc.Edit(ctx, alice, 3, EntryInput{Department: "HR", Minutes: 15, PerformedDate: &performed}))
	assert.Equal(t, "HR", db.entries[0].Department)
	assert.Equal(t, 15, db.entries[0].Minutes)
	assert.Equal(t, &performed, db.entries[0].PerformedDate)
	assert.Equal(t, fixed, db.entries[0].Date, "registration date is immutable")
	assert.Equal(t, "alice", db.entries[0].FullName)

	require.NoError(t, svc.Edit(ctx, alice, 99, EntryInput{Department: "HR"}))
}

func TestEntryStatisticsForAlice(t *testing.T) {
	db := newMemoryDB()
	db.addEntry(domain.TimeEntry{Username: alice.Username, Department: "IT", Minutes: 90, Date: fixed.Add(-24 * time.Hour)})
	db.addEntry(domain.TimeEntry{Username: alice.Username, Department: "HR", Minutes: 30, Date: fixed})
	db.addEntry(domain.TimeEntry{Username: bob.Username, Department: "HR", Minutes: 500, Date: fixed})
	svc := newEntryService(db)

	stats, err := svc.Statistics(context.Background(), alice)

	require.NoError(t, err)
	assert.Equal(t, 120, stats.TotalMinutes)
	assert.Equal(t, 2, stats.Hours)
	assert.Equal(t, 0, stats.Minutes)
	assert.Equal(t, "IT", stats.MostUsed)
	require.Len(t, stats.Departments, 2)
	assert.Equal(t, 75.0, stats.Departments[0].Percent)
	assert.Equal(t, 25.0, stats.Departments[1].Percent)
	require.NotNil(t, stats.MostRecent)
	assert.Equal(t, "HR", stats.MostRecent.Department)
	assert.Equal(t, "IT", stats.Earliest.Department)
}

func TestEntryStatisticsEmpty(t *testing.T) {
	stats, err := newEntryService(newMemoryDB()).Statistics(context.Background(), alice)

	require.NoError(t, err)
	assert.Zero(t, stats.Count)
	assert.Empty(t, stats.Departments)
	assert.Nil(t, stats.MostRecent)
}

func TestActiveDepartmentsHidesDeactivated(t *testing.T) {
	db := newMemoryDB()
	db.addDepartment("IT", true)
	db.addDepartment("Gammel", false)

	depts, err := newEntryService(db).ActiveDepartments(context.Background())

	require.NoError(t, err)
	require.Len(t, depts, 1)
	assert.Equal(t, "IT", depts[0].Name)
}
