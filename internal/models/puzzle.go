package models

import (
	"strings"
	"time"
)

// Category is the sense a daily answer belongs to.
type Category string

const (
	CategoryTaste   Category = "taste"
	CategorySmell   Category = "smell"
	CategoryTexture Category = "texture"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTaste, CategorySmell, CategoryTexture:
		return true
	}
	return false
}

// ParseCategory accepts any casing and surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// DateLayout is the calendar-day key format used for puzzle dates.
const DateLayout = "2006-01-02"

// DateKey returns the UTC calendar day for t.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type Puzzle struct {
	Date      string    `json:"date"`
	Answer    string    `json:"answer"`
	Category  Category  `json:"category"`
	Synonyms  []string  `json:"synonyms"`
	Hints     []string  `json:"hints"`
	Fact      string    `json:"fact"`
	CreatedAt time.Time `json:"created_at"`
}
