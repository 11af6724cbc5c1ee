// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Page holds one page of posts together with pagination metadata.
// Page numbers are 0-based.
type Page struct {
	Content       []Post `json:"-"`
	Number        int    `json:"pageNumber"`
	Size          int    `json:"pageSize"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int64  `json:"totalElements"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
	Empty         bool   `json:"empty"`
}

// NewPage computes pagination metadata for a slice of posts.
// A total of zero yields a single empty page (totalPages = 0).
func NewPage(content []Post, number, size int, total int64) *Page {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &Page{
		Content:       content,
		Number:        number,
		Size:          size,
		TotalPages:    totalPages,
		TotalElements: total,
		First:         number == 0,
		Last:          number >= totalPages-1,
		Empty:         len(content) == 0,
	}
}
