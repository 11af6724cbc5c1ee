package handlers

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const maxTitleLen = 255

// notBlank rejects values that are empty after trimming, matching how
// category names and titles are normalized before storage.
func notBlank(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// postRequest is the body of POST /posts and PUT /posts/{id}.
// A nil Published means "default to true" on create and "keep the
// current value" on update.
type postRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Published    *bool  `json:"published"`
	CategoryName string `json:"categoryName"`
}

// Validate checks the post payload.
func (p postRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error("title is required"),
			validation.By(notBlank), validation.Length(1, maxTitleLen)),
		validation.Field(&p.Content, validation.Required.Error("content is required"),
			validation.By(notBlank)),
		validation.Field(&p.CategoryName, validation.Required.Error("categoryName is required"),
			validation.By(notBlank)),
	)
}

// categoryRequest is the body of POST /categories and PUT /categories/{id}.
type categoryRequest struct {
	Name string `json:"name"`
}

// Validate checks the category payload.
func (c categoryRequest) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required.Error("name is required"),
			validation.By(notBlank)),
	)
}
