package core

import (
	"errors"
	"strings"
)

// AllCategories is the filter selection that matches every submission.
const AllCategories = ""

type (
	// Submission is a single complaint record as stored in the "complaints" collection.
	Submission struct {
		Name     string `json:"name" bson:"name"`
		Email    string `json:"email" bson:"email"`
		Message  string `json:"message" bson:"message"`
		Category string `json:"category" bson:"category"` // may be empty or unknown
	}

	// CategoryCount is one entry of a Distribution.
	CategoryCount struct {
		Category string `json:"category"`
		Count    int    `json:"count"`
	}
)

var (
	ErrEmptyCategory     = errors.New("empty category name")
	ErrDuplicateCategory = errors.New("category already exists")
)

// NormalizeCategory trims the label and rejects blank input.
func NormalizeCategory(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", ErrEmptyCategory
	}
	return label, nil
}

// ContainsCategory reports whether label is present in categories (exact match).
func ContainsCategory(categories []string, label string) bool {
	for _, c := range categories {
		if c == label {
			return true
		}
	}
	return false
}
