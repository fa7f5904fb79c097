// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/drivelot/drivelot/lib/listing"
	"github.com/drivelot/drivelot/lib/query"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func browseRecords() []listing.Listing {
	return []listing.Listing{
		{ID: "1", Make: "Toyota", Model: "Corolla", Year: 2019, Price: 15000},
		{ID: "2", Make: "Honda", Model: "Civic", Year: 2021, Price: 22000},
		{ID: "3", Make: "Toyota", Model: "Camry", Year: 2018, Price: 18000},
	}
}

func TestBrowseDiscardsStaleResponse(t *testing.T) {
	t.Parallel()

	m := newBrowseModel(newTestApp(t))

	// Two fetches in flight: the page was refreshed while the first
	// request was still out.
	m, _ = m.fetch()
	m, _ = m.fetch()

	stale := []listing.Listing{{ID: "stale", Make: "Old", Model: "Data"}}
	m, _ = m.update(carsLoadedMsg{generation: 1, cars: stale})
	if m.records != nil {
		t.Fatal("stale response was applied")
	}
	if !m.loading {
		t.Error("stale response cleared the loading state")
	}

	m, _ = m.update(carsLoadedMsg{generation: 2, cars: browseRecords()})
	if len(m.records) != 3 {
		t.Fatalf("current response not applied, records = %v", m.records)
	}
	if m.loading {
		t.Error("still loading after the current response")
	}
	if got, want := m.makes, []string{"Toyota", "Honda"}; !slices.Equal(got, want) {
		t.Errorf("makes = %v, want %v", got, want)
	}
}

func TestBrowseStaleErrorDoesNotClobberData(t *testing.T) {
	t.Parallel()

	m := newBrowseModel(newTestApp(t))
	m, _ = m.fetch()
	m, _ = m.update(carsLoadedMsg{generation: 1, cars: browseRecords()})

	m, _ = m.fetch()
	m, _ = m.update(carsLoadedMsg{generation: 2, cars: browseRecords()})

	// A late failure from the first fetch must not blank the page.
	m, _ = m.update(carsLoadedMsg{generation: 1, err: errTest})
	if m.err != nil {
		t.Error("stale error was applied")
	}
	if len(m.records) != 3 {
		t.Error("stale error clobbered the record set")
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "test failure" }

func TestBrowseMakeCycling(t *testing.T) {
	t.Parallel()

	m := newBrowseModel(newTestApp(t))
	m, _ = m.fetch()
	m, _ = m.update(carsLoadedMsg{generation: 1, cars: browseRecords()})

	// all -> Toyota -> Honda -> all.
	m, _ = m.update(keyPress('m'))
	if m.params.Make != "Toyota" {
		t.Errorf("first cycle: make = %q, want Toyota", m.params.Make)
	}
	m, _ = m.update(keyPress('m'))
	if m.params.Make != "Honda" {
		t.Errorf("second cycle: make = %q, want Honda", m.params.Make)
	}
	m, _ = m.update(keyPress('m'))
	if m.params.Make != query.AllMakes {
		t.Errorf("third cycle: make = %q, want all makes", m.params.Make)
	}
}

func TestBrowseSortCyclingKeepsPage(t *testing.T) {
	t.Parallel()

	m := newBrowseModel(newTestApp(t))
	m, _ = m.fetch()

	// 12 records: two pages.
	var records []listing.Listing
	for i := 0; i < 12; i++ {
		records = append(records, listing.Listing{ID: string(rune('a' + i)), Make: "Make", Model: "Model"})
	}
	m, _ = m.update(carsLoadedMsg{generation: 1, cars: records})

	m, _ = m.update(keyPress('n'))
	if m.params.Page != 2 {
		t.Fatalf("page = %d after next-page, want 2", m.params.Page)
	}

	// Sorting keeps the page; filtering resets it.
	m, _ = m.update(keyPress('s'))
	if m.params.Sort != query.SortPriceAsc {
		t.Errorf("sort = %q, want price-asc", m.params.Sort)
	}
	if m.params.Page != 2 {
		t.Errorf("page = %d after sort change, want 2", m.params.Page)
	}

	m, _ = m.update(keyPress('m'))
	if m.params.Page != 1 {
		t.Errorf("page = %d after make change, want 1", m.params.Page)
	}
}

func TestBrowseNextPageStopsAtLastPage(t *testing.T) {
	t.Parallel()

	m := newBrowseModel(newTestApp(t))
	m, _ = m.fetch()
	m, _ = m.update(carsLoadedMsg{generation: 1, cars: browseRecords()})

	// Three records fit on one page; next-page must not move past it.
	m, _ = m.update(keyPress('n'))
	if m.params.Page > 1 {
		t.Errorf("page = %d with a single page of results", m.params.Page)
	}
	// Prev on page 1 stays put.
	m, _ = m.update(keyPress('p'))
	if got := query.Apply(m.records, m.params).Number; got != 1 {
		t.Errorf("page number = %d, want 1", got)
	}
}

func TestBrowseSearchTypingFiltersAndResetsCursor(t *testing.T) {
	t.Parallel()

	m := newBrowseModel(newTestApp(t))
	m, _ = m.fetch()
	m, _ = m.update(carsLoadedMsg{generation: 1, cars: browseRecords()})
	m.cursor = 2

	m, _ = m.update(keyPress('/'))
	if !m.typing() {
		t.Fatal("search key did not focus the search field")
	}

	m, _ = m.update(keyPress('c'))
	m, _ = m.update(keyPress('a'))
	if m.params.Search != "ca" {
		t.Errorf("search = %q, want %q", m.params.Search, "ca")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after search edit, want 0", m.cursor)
	}

	// Only Camry matches "ca".
	page := query.Apply(m.records, m.params)
	if len(page.Items) != 1 || page.Items[0].ID != "3" {
		t.Errorf("visible page = %v, want just Camry", page.Items)
	}

	m, _ = m.update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.typing() {
		t.Error("esc did not leave the search field")
	}
}

func TestNextSortCyclesInOrder(t *testing.T) {
	t.Parallel()

	current := query.SortNone
	var seen []query.Sort
	for range query.Sorts {
		current = nextSort(current)
		seen = append(seen, current)
	}
	want := []query.Sort{
		query.SortPriceAsc, query.SortPriceDesc,
		query.SortYearDesc, query.SortYearAsc, query.SortNone,
	}
	if !slices.Equal(seen, want) {
		t.Errorf("sort cycle = %v, want %v", seen, want)
	}
}
