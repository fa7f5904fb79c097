// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"slices"
	"strings"

	"github.com/drivelot/drivelot/lib/listing"
)

// PageSize is the fixed number of listings per page.
const PageSize = 9

// Sort selects the comparator for the sort step.
type Sort string

const (
	// SortNone preserves the input order.
	SortNone Sort = ""
	// SortPriceAsc orders by price, cheapest first.
	SortPriceAsc Sort = "price-asc"
	// SortPriceDesc orders by price, most expensive first.
	SortPriceDesc Sort = "price-desc"
	// SortYearDesc orders by model year, newest first.
	SortYearDesc Sort = "year-desc"
	// SortYearAsc orders by model year, oldest first.
	SortYearAsc Sort = "year-asc"
)

// Sorts lists the selectable sort keys in the order the UI offers them.
var Sorts = []Sort{SortNone, SortPriceAsc, SortPriceDesc, SortYearDesc, SortYearAsc}

// Valid reports whether s is a known sort key.
func (s Sort) Valid() bool {
	return slices.Contains(Sorts, s)
}

// Label returns the human-readable name of the sort key.
func (s Sort) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortYearDesc:
		return "Year: New to Old"
	case SortYearAsc:
		return "Year: Old to New"
	default:
		return "None"
	}
}

// AllMakes is the make-filter value that matches every make.
const AllMakes = ""

// Params is the user-selected query state. The zero value is the
// initial state: no search text, all makes, no sort, page 1 (a zero
// Page is treated as page 1 so the zero value is directly usable).
type Params struct {
	// Search is matched case-insensitively as a substring of a
	// listing's make or model.
	Search string

	// Make filters to listings whose make equals it exactly
	// (case-sensitive). AllMakes disables the filter.
	Make string

	// Sort selects the comparator. SortNone preserves input order.
	Sort Sort

	// Page is the 1-based page number.
	Page int
}

// page returns the effective 1-based page number.
func (p Params) page() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

// WithSearch returns the params with new search text. Changing the
// search resets to page 1.
func (p Params) WithSearch(search string) Params {
	if search == p.Search {
		return p
	}
	p.Search = search
	p.Page = 1
	return p
}

// WithMake returns the params with a new make filter. Changing the
// filter resets to page 1.
func (p Params) WithMake(make string) Params {
	if make == p.Make {
		return p
	}
	p.Make = make
	p.Page = 1
	return p
}

// WithSort returns the params with a new sort key. Changing the sort
// keeps the current page.
func (p Params) WithSort(sort Sort) Params {
	p.Sort = sort
	return p
}

// WithPage returns the params on the given 1-based page. The caller is
// responsible for keeping the page within range; Apply does not clamp.
func (p Params) WithPage(page int) Params {
	p.Page = page
	return p
}

// Page is the pipeline output: the visible slice of listings plus the
// pagination figures the UI needs.
type Page struct {
	// Items is the visible page. Empty when the requested page is past
	// the end.
	Items []listing.Listing

	// Total is the number of listings that survived the filter step.
	Total int

	// TotalPages is ceil(Total / PageSize). Zero when nothing matched.
	TotalPages int

	// Number is the effective 1-based page number that was requested.
	Number int
}

// Apply runs the pipeline: filter, stable sort, paginate. It never
// mutates records; the sort step works on a copy of the filtered set.
func Apply(records []listing.Listing, params Params) Page {
	filtered := filter(records, params)
	sortListings(filtered, params.Sort)

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize

	page := params.page()
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}

	var items []listing.Listing
	if start < total {
		items = filtered[start:end]
	}

	return Page{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Number:     page,
	}
}

// filter returns a new slice holding the records that match the search
// text and make filter, in input order.
func filter(records []listing.Listing, params Params) []listing.Listing {
	search := strings.ToLower(params.Search)

	matched := make([]listing.Listing, 0, len(records))
	for _, record := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(record.Make), search) &&
			!strings.Contains(strings.ToLower(record.Model), search) {
			continue
		}
		if params.Make != AllMakes && record.Make != params.Make {
			continue
		}
		matched = append(matched, record)
	}
	return matched
}

// sortListings stable-sorts in place. Ties keep their relative input
// order; SortNone leaves the slice untouched.
func sortListings(listings []listing.Listing, sort Sort) {
	var compare func(a, b listing.Listing) int
	switch sort {
	case SortPriceAsc:
		compare = func(a, b listing.Listing) int { return comparePrice(a, b) }
	case SortPriceDesc:
		compare = func(a, b listing.Listing) int { return -comparePrice(a, b) }
	case SortYearAsc:
		compare = func(a, b listing.Listing) int { return a.Year - b.Year }
	case SortYearDesc:
		compare = func(a, b listing.Listing) int { return b.Year - a.Year }
	default:
		return
	}
	slices.SortStableFunc(listings, compare)
}

func comparePrice(a, b listing.Listing) int {
	switch {
	case a.Price < b.Price:
		return -1
	case a.Price > b.Price:
		return 1
	default:
		return 0
	}
}

// Makes returns the distinct make values across the unfiltered record
// set, in first-seen order. The result feeds the make-filter options,
// so it is computed from the full set: filtering must never shrink the
// choice of filters.
func Makes(records []listing.Listing) []string {
	seen := make(map[string]bool, len(records))
	makes := make([]string, 0, len(records))
	for _, record := range records {
		if seen[record.Make] {
			continue
		}
		seen[record.Make] = true
		makes = append(makes, record.Make)
	}
	return makes
}
