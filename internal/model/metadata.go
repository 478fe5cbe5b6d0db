package model

import "fmt"

// PaperMetadata is the bibliographic triple a filename is built from.
//
// Invariants (enforced by the metadata validator, not here):
//   - Author is non-empty and holds no path separators or control characters
//   - Year is a four-digit year in a plausible range
//   - Title is non-empty after trimming
type PaperMetadata struct {
	// Author is the surname of the first author.
	Author string

	// Year is the publication year.
	Year int

	// Title is the full paper title as printed.
	Title string
}

func (m PaperMetadata) String() string {
	return fmt.Sprintf("%s (%d) %q", m.Author, m.Year, m.Title)
}

// IsZero reports whether m carries no metadata at all.
func (m PaperMetadata) IsZero() bool {
	return m == PaperMetadata{}
}
