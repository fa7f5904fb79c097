// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package query

import (
	"slices"
	"testing"

	"github.com/drivelot/drivelot/lib/listing"
)

func testRecords() []listing.Listing {
	return []listing.Listing{
		{ID: "1", Make: "Toyota", Model: "Corolla", Year: 2019, Price: 15000},
		{ID: "2", Make: "Honda", Model: "Civic", Year: 2021, Price: 22000},
		{ID: "3", Make: "Toyota", Model: "Camry", Year: 2018, Price: 18000},
		{ID: "4", Make: "Ford", Model: "Focus", Year: 2021, Price: 14000},
		{ID: "5", Make: "Honda", Model: "Accord", Year: 2020, Price: 22000},
	}
}

func ids(items []listing.Listing) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestApplySearchMatchesMakeOrModel(t *testing.T) {
	t.Parallel()

	// "cor" appears in Corolla (model) and Accord (model), nothing else.
	page := Apply(testRecords(), Params{Search: "cor"})
	if got, want := ids(page.Items), []string{"1", "5"}; !slices.Equal(got, want) {
		t.Errorf("search %q matched %v, want %v", "cor", got, want)
	}

	// Case-insensitive against the make too.
	page = Apply(testRecords(), Params{Search: "TOYO"})
	if got, want := ids(page.Items), []string{"1", "3"}; !slices.Equal(got, want) {
		t.Errorf("search %q matched %v, want %v", "TOYO", got, want)
	}
}

func TestApplyMakeFilterIsExact(t *testing.T) {
	t.Parallel()

	page := Apply(testRecords(), Params{Make: "Toyota"})
	if got, want := ids(page.Items), []string{"1", "3"}; !slices.Equal(got, want) {
		t.Errorf("make filter matched %v, want %v", got, want)
	}

	// The filter is case-sensitive: "toyota" matches nothing.
	page = Apply(testRecords(), Params{Make: "toyota"})
	if page.Total != 0 {
		t.Errorf("lowercase make filter matched %d records, want 0", page.Total)
	}

	// AllMakes disables the filter.
	page = Apply(testRecords(), Params{Make: AllMakes})
	if page.Total != len(testRecords()) {
		t.Errorf("AllMakes matched %d records, want %d", page.Total, len(testRecords()))
	}
}

func TestApplySearchAndMakeCombine(t *testing.T) {
	t.Parallel()

	page := Apply(testRecords(), Params{Search: "c", Make: "Toyota"})
	if got, want := ids(page.Items), []string{"1", "3"}; !slices.Equal(got, want) {
		t.Errorf("combined filters matched %v, want %v", got, want)
	}
}

func TestApplySortOrders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort Sort
		want []string
	}{
		{SortNone, []string{"1", "2", "3", "4", "5"}},
		{SortPriceAsc, []string{"4", "1", "3", "2", "5"}},
		// Records 2 and 5 tie on price; stability keeps input order in
		// both directions.
		{SortPriceDesc, []string{"2", "5", "3", "1", "4"}},
		{SortYearAsc, []string{"3", "1", "5", "2", "4"}},
		{SortYearDesc, []string{"2", "4", "5", "1", "3"}},
	}
	for _, test := range tests {
		t.Run(string(test.sort), func(t *testing.T) {
			t.Parallel()
			page := Apply(testRecords(), Params{Sort: test.sort})
			if got := ids(page.Items); !slices.Equal(got, test.want) {
				t.Errorf("sort %q ordered %v, want %v", test.sort, got, test.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	records := testRecords()
	Apply(records, Params{Sort: SortPriceAsc})
	if got, want := ids(records), []string{"1", "2", "3", "4", "5"}; !slices.Equal(got, want) {
		t.Errorf("input order changed to %v, want %v", got, want)
	}
}

func TestApplyPagination(t *testing.T) {
	t.Parallel()

	// 20 records: 3 pages of 9, 9, 2.
	var records []listing.Listing
	for i := 0; i < 20; i++ {
		records = append(records, listing.Listing{ID: string(rune('a' + i)), Make: "Make", Model: "Model"})
	}

	page := Apply(records, Params{Page: 1})
	if got, want := len(page.Items), PageSize; got != want {
		t.Errorf("page 1 has %d items, want %d", got, want)
	}
	if got, want := page.TotalPages, 3; got != want {
		t.Errorf("TotalPages = %d, want %d", got, want)
	}

	// Concatenating all pages reconstructs the filtered set exactly.
	var reassembled []listing.Listing
	for number := 1; number <= page.TotalPages; number++ {
		reassembled = append(reassembled, Apply(records, Params{Page: number}).Items...)
	}
	if got, want := ids(reassembled), ids(records); !slices.Equal(got, want) {
		t.Errorf("pages reassemble to %v, want %v", got, want)
	}

	// An out-of-range page is empty, with the figures intact.
	beyond := Apply(records, Params{Page: 4})
	if len(beyond.Items) != 0 {
		t.Errorf("page past the end has %d items, want 0", len(beyond.Items))
	}
	if beyond.Total != 20 || beyond.TotalPages != 3 {
		t.Errorf("out-of-range page reported Total=%d TotalPages=%d, want 20 and 3",
			beyond.Total, beyond.TotalPages)
	}

	// Page zero behaves as page 1.
	first := Apply(records, Params{})
	if got, want := ids(first.Items), ids(page.Items); !slices.Equal(got, want) {
		t.Errorf("zero page returned %v, want page 1 %v", got, want)
	}
	if first.Number != 1 {
		t.Errorf("zero page Number = %d, want 1", first.Number)
	}
}

func TestApplyEmptySet(t *testing.T) {
	t.Parallel()

	page := Apply(nil, Params{Search: "anything"})
	if len(page.Items) != 0 || page.Total != 0 || page.TotalPages != 0 {
		t.Errorf("empty set produced %+v, want all zero", page)
	}
	if got := Makes(nil); len(got) != 0 {
		t.Errorf("Makes(nil) = %v, want empty", got)
	}
}

func TestParamsPageReset(t *testing.T) {
	t.Parallel()

	params := Params{Search: "cor", Make: "Toyota", Sort: SortPriceAsc, Page: 3}

	if got := params.WithSearch("civ"); got.Page != 1 {
		t.Errorf("changing search kept page %d, want 1", got.Page)
	}
	if got := params.WithMake("Honda"); got.Page != 1 {
		t.Errorf("changing make kept page %d, want 1", got.Page)
	}
	if got := params.WithSort(SortYearDesc); got.Page != 3 {
		t.Errorf("changing sort moved to page %d, want 3", got.Page)
	}

	// Re-selecting the current value is a no-op, not a reset.
	if got := params.WithSearch("cor"); got.Page != 3 {
		t.Errorf("unchanged search moved to page %d, want 3", got.Page)
	}
	if got := params.WithMake("Toyota"); got.Page != 3 {
		t.Errorf("unchanged make moved to page %d, want 3", got.Page)
	}
}

func TestMakesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	got := Makes(testRecords())
	want := []string{"Toyota", "Honda", "Ford"}
	if !slices.Equal(got, want) {
		t.Errorf("Makes = %v, want %v", got, want)
	}
}
