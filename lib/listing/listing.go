// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package listing defines the marketplace data model: car listings, the
// users who sell them, and the notifications the backend delivers. The
// backend owns all of this data; the client never invents identifiers
// and never mutates a listing after creation. List membership changes
// only by re-fetching.
package listing

import (
	"errors"
	"fmt"
	"time"
)

// Transmission is the gearbox type of a listed car. The empty value
// means the seller didn't specify one.
type Transmission string

const (
	TransmissionUnset         Transmission = ""
	TransmissionManual        Transmission = "Manual"
	TransmissionAutomatic     Transmission = "Automatic"
	TransmissionSemiAutomatic Transmission = "Semi-Automatic"
)

// Transmissions lists the selectable transmission values, in the order
// the submission form presents them.
var Transmissions = []Transmission{
	TransmissionManual,
	TransmissionAutomatic,
	TransmissionSemiAutomatic,
}

// Valid reports whether the transmission is a known value or unset.
func (t Transmission) Valid() bool {
	switch t {
	case TransmissionUnset, TransmissionManual, TransmissionAutomatic, TransmissionSemiAutomatic:
		return true
	}
	return false
}

// FuelType is the fuel of a listed car. The empty value means the
// seller didn't specify one.
type FuelType string

const (
	FuelUnset    FuelType = ""
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// FuelTypes lists the selectable fuel values, in the order the
// submission form presents them.
var FuelTypes = []FuelType{
	FuelPetrol,
	FuelDiesel,
	FuelElectric,
	FuelHybrid,
}

// Valid reports whether the fuel type is a known value or unset.
func (f FuelType) Valid() bool {
	switch f {
	case FuelUnset, FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid:
		return true
	}
	return false
}

// Seller holds the denormalized display fields the backend embeds in a
// listing detail response. Only the detail endpoint populates it; list
// responses carry the zero value.
type Seller struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Listing is one car for sale. The ID is an opaque backend-assigned
// identifier, stable for the lifetime of the listing.
type Listing struct {
	ID           string       `json:"id"`
	Make         string       `json:"make"`
	Model        string       `json:"model"`
	Year         int          `json:"year"`
	Mileage      float64      `json:"mileage"`
	Price        float64      `json:"price"`
	Description  string       `json:"description,omitempty"`
	Transmission Transmission `json:"transmission,omitempty"`
	FuelType     FuelType     `json:"fuelType,omitempty"`
	Color        string       `json:"color,omitempty"`
	Condition    string       `json:"condition,omitempty"`

	// ImageURLs is the ordered image gallery. May be empty; the view
	// layer substitutes PlaceholderImageURL at render time.
	ImageURLs []string `json:"imageUrls,omitempty"`

	// Seller is embedded by GET /cars/{id} only.
	Seller Seller `json:"user,omitzero"`
}

// PlaceholderImageURL is shown when a listing has no images. Substituting
// it is a rendering decision; the Listing itself keeps its empty gallery.
const PlaceholderImageURL = "https://via.placeholder.com/600x400.png?text=No+Image"

// Images returns the gallery to display: the listing's own image URLs,
// or the placeholder when there are none.
func (l *Listing) Images() []string {
	if len(l.ImageURLs) > 0 {
		return l.ImageURLs
	}
	return []string{PlaceholderImageURL}
}

// Title returns the display title, e.g. "Toyota Corolla (2019)".
func (l *Listing) Title() string {
	return fmt.Sprintf("%s %s (%d)", l.Make, l.Model, l.Year)
}

// MinYear is the earliest accepted model year. The Benz Patent-Motorwagen
// dates the floor.
const MinYear = 1886

// Draft is the client-side input for a new listing submission. Images
// are local file paths; the gateway streams them as multipart parts.
type Draft struct {
	Make         string       `json:"make"`
	Model        string       `json:"model"`
	Year         int          `json:"year"`
	Mileage      float64      `json:"mileage"`
	Price        float64      `json:"price"`
	Description  string       `json:"description,omitempty"`
	Transmission Transmission `json:"transmission,omitempty"`
	FuelType     FuelType     `json:"fuelType,omitempty"`
	Color        string       `json:"color,omitempty"`
	Condition    string       `json:"condition,omitempty"`

	ImagePaths []string `json:"-"`
}

// Validate checks the draft before submission. Validation failures block
// the network call entirely; nothing invalid is ever sent.
func (d *Draft) Validate() error {
	var errs []error

	if d.Make == "" {
		errs = append(errs, errors.New("make is required"))
	}
	if d.Model == "" {
		errs = append(errs, errors.New("model is required"))
	}
	maxYear := time.Now().Year() + 1
	if d.Year < MinYear || d.Year > maxYear {
		errs = append(errs, fmt.Errorf("year must be between %d and %d", MinYear, maxYear))
	}
	if d.Mileage < 0 {
		errs = append(errs, errors.New("mileage must not be negative"))
	}
	if d.Price <= 0 {
		errs = append(errs, errors.New("price is required and must be positive"))
	}
	if !d.Transmission.Valid() {
		errs = append(errs, fmt.Errorf("unknown transmission %q", d.Transmission))
	}
	if !d.FuelType.Valid() {
		errs = append(errs, fmt.Errorf("unknown fuel type %q", d.FuelType))
	}

	return errors.Join(errs...)
}

// Notification is one entry from GET /users/notifications.
type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// User is the profile object returned by the backend's user endpoints.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
