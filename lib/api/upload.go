// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/drivelot/drivelot/lib/listing"
)

// CreateCar submits a new listing. The draft is validated locally
// first; an invalid draft never reaches the network. The request is
// multipart: a JSON-encoded "car" part with the listing fields, plus
// one "images" file part per image path.
func (c *Client) CreateCar(ctx context.Context, draft *listing.Draft) (*listing.Listing, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	encoded, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("create car: encoding listing: %w", err)
	}
	if err := writer.WriteField("car", string(encoded)); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	for _, path := range draft.ImagePaths {
		if err := writeFilePart(writer, "images", path); err != nil {
			return nil, fmt.Errorf("create car: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/cars", &buffer)
	if err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var created listing.Listing
	if err := c.doJSON(request, &created); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return &created, nil
}

// UpdateProfile changes the user's display name and, when avatarPath
// is non-empty, uploads a new avatar. Returns the updated user object.
func (c *Client) UpdateProfile(ctx context.Context, name, avatarPath string) (*listing.User, error) {
	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)

	if err := writer.WriteField("name", name); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if avatarPath != "" {
		if err := writeFilePart(writer, "avatar", avatarPath); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/users/profile", &buffer)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	var updated listing.User
	if err := c.doJSON(request, &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}

// writeFilePart streams one local file into a multipart form part.
func writeFilePart(writer *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}
