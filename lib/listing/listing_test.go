// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package listing

import (
	"strings"
	"testing"
	"time"
)

func validDraft() Draft {
	return Draft{
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2019,
		Mileage:      42000,
		Price:        15000,
		Transmission: TransmissionAutomatic,
		FuelType:     FuelPetrol,
	}
}

func TestDraftValidate(t *testing.T) {
	t.Parallel()

	draft := validDraft()
	if err := draft.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantMsg string
	}{
		{"missing make", func(d *Draft) { d.Make = "" }, "make is required"},
		{"missing model", func(d *Draft) { d.Model = "" }, "model is required"},
		{"year too old", func(d *Draft) { d.Year = 1885 }, "year must be between"},
		{"year in the future", func(d *Draft) { d.Year = time.Now().Year() + 2 }, "year must be between"},
		{"negative mileage", func(d *Draft) { d.Mileage = -1 }, "mileage must not be negative"},
		{"zero price", func(d *Draft) { d.Price = 0 }, "price is required"},
		{"unknown transmission", func(d *Draft) { d.Transmission = "CVT-ish" }, "unknown transmission"},
		{"unknown fuel", func(d *Draft) { d.FuelType = "Coal" }, "unknown fuel type"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			draft := validDraft()
			test.mutate(&draft)
			err := draft.Validate()
			if err == nil {
				t.Fatal("invalid draft accepted")
			}
			if !strings.Contains(err.Error(), test.wantMsg) {
				t.Errorf("error %q does not mention %q", err, test.wantMsg)
			}
		})
	}
}

func TestDraftValidateReportsAllFailures(t *testing.T) {
	t.Parallel()

	draft := Draft{Year: 1800, Mileage: -5}
	err := draft.Validate()
	if err == nil {
		t.Fatal("empty draft accepted")
	}
	for _, want := range []string{"make", "model", "year", "mileage", "price"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("combined error %q does not mention %s", err, want)
		}
	}
}

func TestNextYearModelAccepted(t *testing.T) {
	t.Parallel()

	// Dealers list next year's models before the calendar turns.
	draft := validDraft()
	draft.Year = time.Now().Year() + 1
	if err := draft.Validate(); err != nil {
		t.Errorf("next-year model rejected: %v", err)
	}
}

func TestImages(t *testing.T) {
	t.Parallel()

	withImages := Listing{ImageURLs: []string{"https://cdn.example.com/a.jpg"}}
	if got := withImages.Images(); len(got) != 1 || got[0] != "https://cdn.example.com/a.jpg" {
		t.Errorf("Images() = %v, want the listing's own gallery", got)
	}

	var bare Listing
	got := bare.Images()
	if len(got) != 1 || got[0] != PlaceholderImageURL {
		t.Errorf("Images() on empty gallery = %v, want the placeholder", got)
	}
	// The listing itself keeps its empty gallery.
	if bare.ImageURLs != nil {
		t.Error("Images() mutated the listing")
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	car := Listing{Make: "Toyota", Model: "Corolla", Year: 2019}
	if got, want := car.Title(), "Toyota Corolla (2019)"; got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}
