package domain

import "strings"

// Slugify lowercases the title, collapses every run of non-alphanumerics
// into a single hyphen and strips leading/trailing hyphens.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastHyphen := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if isAlnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// RecomputeSlug refreshes the slug only when the title actually changed.
func (j *Posting) RecomputeSlug(prevTitle string) {
	if j.Title != prevTitle {
		j.Slug = Slugify(j.Title)
	}
}
