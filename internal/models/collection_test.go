package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Cooking", "cooking"},
		{"Late Night Jazz", "late-night-jazz"},
		{"  Best of 2026!!  ", "best-of-2026"},
		{"C++ & Go tips", "c-go-tips"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestNewCollectionDefaultsVisibility(t *testing.T) {
	c := NewCollection(1, "Cooking", "", "")
	assert.Equal(t, VisibilityPublic, c.Visibility)
	assert.Equal(t, "cooking", c.Slug)

	c = NewCollection(1, "Cooking", "", "friends")
	assert.Equal(t, VisibilityPublic, c.Visibility)

	c = NewCollection(1, "Cooking", "", VisibilityPrivate)
	assert.Equal(t, VisibilityPrivate, c.Visibility)
	assert.Equal(t, uint(1), c.Owner())
}
