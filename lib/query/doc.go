// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package query is the client-side listing query pipeline: a pure,
// deterministic function from a fetched record set and user-selected
// parameters to the visible page of results.
//
// The pipeline runs three steps in a fixed order: filter (free-text
// search over make and model, plus an exact make filter), stable sort
// (price or year, either direction, or none), and pagination (fixed
// page size of nine). No step touches the network or any storage;
// everything operates on records already fetched, so callers can
// recompute or cache results keyed on (records, params) without hidden
// state.
//
// Key exports:
//
//   - [Params] -- the search/filter/sort/page selection, with
//     transition helpers that encode the page-reset rules
//   - [Apply] -- runs the pipeline and returns a [Page]
//   - [Makes] -- distinct makes of the unfiltered record set, used to
//     populate the make-filter options
//
// This package depends only on the listing data model.
package query
