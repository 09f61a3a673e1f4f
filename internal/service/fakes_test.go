package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/repository"
)

// memoryDB backs the fake repositories. WithinTx snapshots it and restores
// the snapshot when the callback fails.
type memoryDB struct {
	entries     []domain.TimeEntry
	departments []domain.Department
	nextEntry   int64
	nextDept    int64

	failRename error
}

func newMemoryDB() *memoryDB {
	return &memoryDB{nextEntry: 1, nextDept: 1}
}

func (db *memoryDB) addEntry(e domain.TimeEntry) domain.TimeEntry {
	if e.ID == 0 {
		e.ID = db.nextEntry
	}
	if e.ID >= db.nextEntry {
		db.nextEntry = e.ID + 1
	}
	db.entries = append(db.entries, e)
	return e
}

func (db *memoryDB) addDepartment(name string, active bool) domain.Department {
	d := domain.Department{ID: db.nextDept, Name: name, Active: active}
	db.nextDept++
	db.departments = append(db.departments, d)
	return d
}

func (db *memoryDB) Entries() repository.EntryRepository {
	return &fakeEntries{db: db}
}

func (db *memoryDB) Departments() repository.DepartmentRepository {
	return &fakeDepartments{db: db}
}

func (db *memoryDB) WithinTx(_ context.Context, fn func(repository.Repositories) error) error {
	entries := append([]domain.TimeEntry(nil), db.entries...)
	departments := append([]domain.Department(nil), db.departments...)
	if err := fn(db); err != nil {
		db.entries = entries
		db.departments = departments
		return err
	}
	return nil
}

type fakeEntries struct {
	db *memoryDB
}

func (r *fakeEntries) Create(_ context.Context, entry *domain.TimeEntry) error {
	*entry = r.db.addEntry(*entry)
	return nil
}

func (r *fakeEntries) List(_ context.Context, filter repository.EntryFilter) ([]domain.TimeEntry, error) {
	var out []domain.TimeEntry
	for _, e := range r.db.entries {
		if filter.Username != nil && e.Username != *filter.Username {
			continue
		}
		if filter.FullName != nil && e.FullName != *filter.FullName {
			continue
		}
		if filter.Department != nil && e.Department != *filter.Department {
			continue
		}
		if filter.DateFrom != nil && e.Date.Before(midnight(*filter.DateFrom)) {
			continue
		}
		if filter.DateTo != nil && !e.Date.Before(midnight(*filter.DateTo).AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(a, b int) bool {
		if filter.Sort.Descending {
			return out[a].Date.After(out[b].Date)
		}
		return out[a].Date.Before(out[b].Date)
	})
	return out, nil
}

func (r *fakeEntries) UpdateOwned(_ context.Context, entry *domain.TimeEntry) (bool, error) {
	for i, e := range r.db.entries {
		if e.ID == entry.ID && e.Username == entry.Username {
			r.db.entries[i].Department = entry.Department
			r.db.entries[i].Minutes = entry.Minutes
			r.db.entries[i].Remarks = entry.Remarks
			r.db.entries[i].PerformedDate = entry.PerformedDate
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEntries) DeleteOwned(_ context.Context, id int64, username string) (bool, error) {
	for i, e := range r.db.entries {
		if e.ID == id && e.Username == username {
			r.db.entries = append(r.db.entries[:i], r.db.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEntries) RenameDepartment(_ context.Context, oldName, newName string) (int64, error) {
	if r.db.failRename != nil {
		return 0, r.db.failRename
	}
	var n int64
	for i := range r.db.entries {
		if r.db.entries[i].Department == oldName {
			r.db.entries[i].Department = newName
			n++
		}
	}
	return n, nil
}

func (r *fakeEntries) DistinctDepartments(_ context.Context) ([]string, error) {
	return r.distinct(func(e domain.TimeEntry) string { return e.Department }), nil
}

func (r *fakeEntries) DistinctFullNames(_ context.Context) ([]string, error) {
	return r.distinct(func(e domain.TimeEntry) string { return e.FullName }), nil
}

func (r *fakeEntries) distinct(field func(domain.TimeEntry) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range r.db.entries {
		v := field(e)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func (r *fakeEntries) UsageByDepartment(_ context.Context) ([]domain.DepartmentUsage, error) {
	index := map[string]int{}
	var out []domain.DepartmentUsage
	for _, e := range r.db.entries {
		i, ok := index[e.Department]
		if !ok {
			i = len(out)
			index[e.Department] = i
			out = append(out, domain.DepartmentUsage{Department: e.Department})
		}
		out[i].EntryCount++
		out[i].TotalMinutes += e.Minutes
		if e.Date.After(out[i].LatestDate) {
			out[i].LatestDate = e.Date
		}
	}
	return out, nil
}

type fakeDepartments struct {
	db *memoryDB
}

func (r *fakeDepartments) Create(_ context.Context, dept *domain.Department) error {
	dept.ID = r.db.nextDept
	r.db.nextDept++
	r.db.departments = append(r.db.departments, *dept)
	return nil
}

func (r *fakeDepartments) Update(_ context.Context, dept *domain.Department) error {
	for i := range r.db.departments {
		if r.db.departments[i].ID == dept.ID {
			r.db.departments[i] = *dept
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeDepartments) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	for _, d := range r.db.departments {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartments) List(_ context.Context) ([]domain.Department, error) {
	out := append([]domain.Department(nil), r.db.departments...)
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Active != out[b].Active {
			return out[a].Active
		}
		return out[a].Name < out[b].Name
	})
	return out, nil
}

func (r *fakeDepartments) ListActive(ctx context.Context) ([]domain.Department, error) {
	all, _ := r.List(ctx)
	var out []domain.Department
	for _, d := range all {
		if d.Active {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDepartments) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, d := range r.db.departments {
		if d.ID != excludeID && strings.EqualFold(d.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

var errCascade = errors.New("cascade failed")
