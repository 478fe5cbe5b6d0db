package filename

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/handiism/paper-renamer/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Ext is the extension of every formatted name.
	Ext = ".pdf"

	// DefaultMaxStem caps the length of the name without its extension.
	DefaultMaxStem = 200
)

var (
	separators = regexp.MustCompile(`[\s_]+`)
	disallowed = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRuns   = regexp.MustCompile(`-{2,}`)
)

// Slug lower-cases s, turns whitespace runs into dashes and drops every
// character outside [a-z0-9-]. The result has no leading, trailing or
// doubled dashes and may be empty.
func Slug(s string) string {
	s = cases.Lower(language.Und).String(s)
	s = separators.ReplaceAllString(s, "-")
	s = disallowed.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Format builds the canonical name for m. The metadata must already be
// validated: author and title must both have a non-empty Slug.
//
// When the stem (name without ".pdf") would exceed maxStem, trailing title
// words are dropped. Author and year are never shortened and the first title
// word is always kept. maxStem <= 0 selects DefaultMaxStem.
func Format(m model.PaperMetadata, maxStem int) string {
	if maxStem <= 0 {
		maxStem = DefaultMaxStem
	}

	prefix := Slug(m.Author) + "-" + strconv.Itoa(m.Year) + "-"
	title := fitWords(Slug(m.Title), maxStem-len(prefix))

	return prefix + title + Ext
}

// fitWords keeps as many leading dash-separated words of slug as fit in
// budget bytes, but never fewer than one.
func fitWords(slug string, budget int) string {
	if len(slug) <= budget {
		return slug
	}

	words := strings.Split(slug, "-")
	out := words[0]
	for _, w := range words[1:] {
		if len(out)+1+len(w) > budget {
			break
		}
		out += "-" + w
	}
	return out
}
