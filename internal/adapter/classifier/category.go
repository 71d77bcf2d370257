package classifier

import (
	"strings"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/util"
)

// FallbackCategory is used whenever a topic cannot be classified.
func FallbackCategory() domain.CategoryDraft {
	return domain.CategoryDraft{
		Name:        "Web Development",
		Slug:        "webdev",
		Description: "Web Development fundamentals and technologies",
	}
}

// normalize trims the draft and forces the slug into canonical form. Upstream
// output is untrusted, so this runs even when the slug already looks clean.
func normalize(c domain.CategoryDraft) domain.CategoryDraft {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Slug = util.Slugify(c.Slug)
	if c.Slug == "" {
		c.Slug = util.Slugify(c.Name)
	}
	return c
}
