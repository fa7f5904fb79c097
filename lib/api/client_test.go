// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/drivelot/drivelot/lib/listing"
	"github.com/drivelot/drivelot/lib/session"
)

// staticTokens is a TokenSource with a fixed token.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestCarsAttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]listing.Listing{{ID: "1", Make: "Toyota", Model: "Corolla", Year: 2019}})
	}))
	defer server.Close()

	client := NewForTesting(server.URL, staticTokens("tok-123"))
	cars, err := client.Cars(context.Background())
	if err != nil {
		t.Fatalf("Cars: %v", err)
	}
	if len(cars) != 1 || cars[0].ID != "1" {
		t.Errorf("Cars = %+v, want the one listing", cars)
	}
	if gotAuthorization != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuthorization, "Bearer tok-123")
	}
}

func TestLoggedOutRequestsCarryNoAuthorizationHeader(t *testing.T) {
	t.Parallel()

	var hadHeader bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadHeader = r.Header["Authorization"]
		json.NewEncoder(w).Encode([]listing.Listing{})
	}))
	defer server.Close()

	client := NewForTesting(server.URL, staticTokens(""))
	if _, err := client.Cars(context.Background()); err != nil {
		t.Fatalf("Cars: %v", err)
	}
	if hadHeader {
		t.Error("logged-out request carried an Authorization header")
	}
}

func TestServerErrorBecomesTypedError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "car not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewForTesting(server.URL, nil)
	_, err := client.Car(context.Background(), "999")
	if err == nil {
		t.Fatal("missing car returned no error")
	}

	var apiError *Error
	if !errors.As(err, &apiError) {
		t.Fatalf("error %v is not a *Error", err)
	}
	if apiError.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiError.StatusCode)
	}
	if IsUnauthorized(err) {
		t.Error("IsUnauthorized(404) = true")
	}
}

func TestIsUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewForTesting(server.URL, staticTokens("stale"))
	_, err := client.Notifications(context.Background())
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if IsUnauthorized(errors.New("dial tcp: connection refused")) {
		t.Error("IsUnauthorized(transport error) = true")
	}
}

func TestCarFetchesSellerDetails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cars/42" {
			t.Errorf("path = %q, want /cars/42", r.URL.Path)
		}
		json.NewEncoder(w).Encode(listing.Listing{
			ID: "42", Make: "Honda", Model: "Civic", Year: 2021,
			Seller: listing.Seller{Name: "Jane", Email: "jane@example.com"},
		})
	}))
	defer server.Close()

	client := NewForTesting(server.URL, nil)
	car, err := client.Car(context.Background(), "42")
	if err != nil {
		t.Fatalf("Car: %v", err)
	}
	if car.Seller.Name != "Jane" || car.Seller.Email != "jane@example.com" {
		t.Errorf("Seller = %+v, want Jane <jane@example.com>", car.Seller)
	}
}

func TestCreateCarSendsMultipart(t *testing.T) {
	t.Parallel()

	imagePath := filepath.Join(t.TempDir(), "front.jpg")
	if err := os.WriteFile(imagePath, []byte("jpeg-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cars" {
			t.Errorf("%s %s, want POST /cars", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}

		var draft listing.Draft
		if err := json.Unmarshal([]byte(r.FormValue("car")), &draft); err != nil {
			t.Fatalf("decoding car part: %v", err)
		}
		if draft.Make != "Toyota" || draft.Year != 2019 {
			t.Errorf("car part = %+v, want the submitted draft", draft)
		}

		files := r.MultipartForm.File["images"]
		if len(files) != 1 || files[0].Filename != "front.jpg" {
			t.Fatalf("images parts = %+v, want one front.jpg", files)
		}

		json.NewEncoder(w).Encode(listing.Listing{ID: "7", Make: draft.Make, Model: draft.Model, Year: draft.Year})
	}))
	defer server.Close()

	client := NewForTesting(server.URL, staticTokens("tok"))
	created, err := client.CreateCar(context.Background(), &listing.Draft{
		Make: "Toyota", Model: "Corolla", Year: 2019, Price: 15000,
		ImagePaths: []string{imagePath},
	})
	if err != nil {
		t.Fatalf("CreateCar: %v", err)
	}
	if created.ID != "7" {
		t.Errorf("created ID = %q, want 7", created.ID)
	}
}

func TestCreateCarRejectsInvalidDraftBeforeNetwork(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid draft reached the server")
	}))
	defer server.Close()

	client := NewForTesting(server.URL, nil)
	if _, err := client.CreateCar(context.Background(), &listing.Draft{}); err == nil {
		t.Error("CreateCar accepted an empty draft")
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	avatarPath := filepath.Join(t.TempDir(), "avatar.png")
	if err := os.WriteFile(avatarPath, []byte("png-bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/profile" {
			t.Errorf("%s %s, want PUT /users/profile", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		if got := r.FormValue("name"); got != "Jane Driver" {
			t.Errorf("name part = %q, want %q", got, "Jane Driver")
		}
		if files := r.MultipartForm.File["avatar"]; len(files) != 1 {
			t.Errorf("avatar parts = %d, want 1", len(files))
		}
		json.NewEncoder(w).Encode(listing.User{ID: "u1", Name: "Jane Driver"})
	}))
	defer server.Close()

	client := NewForTesting(server.URL, staticTokens("tok"))
	updated, err := client.UpdateProfile(context.Background(), "Jane Driver", avatarPath)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Jane Driver" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Jane Driver")
	}
}

func TestLoginAndRegister(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var credentials Credentials
			json.NewDecoder(r.Body).Decode(&credentials)
			if credentials.Email != "jane@example.com" {
				t.Errorf("login email = %q", credentials.Email)
			}
			json.NewEncoder(w).Encode(map[string]string{"token": "login-token"})
		case "/auth/register":
			var registration Registration
			json.NewDecoder(r.Body).Decode(&registration)
			// The client defaults an empty role to CONSUMER before
			// sending.
			if registration.Role != session.RoleConsumer {
				t.Errorf("registration role = %q, want CONSUMER", registration.Role)
			}
			json.NewEncoder(w).Encode(map[string]string{"token": "register-token"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewForTesting(server.URL, nil)

	token, err := client.Login(context.Background(), Credentials{Email: "jane@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != "login-token" {
		t.Errorf("login token = %q", token)
	}

	token, err = client.Register(context.Background(), Registration{Name: "Jane", Email: "jane@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token != "register-token" {
		t.Errorf("register token = %q", token)
	}
}

func TestEmptyTokenResponseIsError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewForTesting(server.URL, nil)
	if _, err := client.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err == nil {
		t.Error("Login accepted a response without a token")
	}
}
