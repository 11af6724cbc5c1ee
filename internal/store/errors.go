// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "errors"

var (
	// ErrNotFound is returned by mutations whose target id resolves to nothing.
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is returned when a category name collides with an
	// existing category.
	ErrAlreadyExists = errors.New("store: already exists")
)
