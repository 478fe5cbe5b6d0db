package filename

import (
	"errors"
	"fmt"
	"regexp"
)

// MaxNameBytes is the longest base name most filesystems accept.
const MaxNameBytes = 255

// Grammar matches names of the form <author>-<year>-<title>.pdf.
var Grammar = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*-[0-9]{4}-[a-z0-9]+(-[a-z0-9]+)*\.pdf$`)

var (
	// ErrGrammar is returned by Check for names that do not match Grammar.
	ErrGrammar = errors.New("name must look like author-yyyy-title-words.pdf (lower-case letters, digits and single dashes)")

	// ErrTooLong is returned by Check for names over MaxNameBytes.
	ErrTooLong = fmt.Errorf("name must be at most %d bytes", MaxNameBytes)
)

// Check reports whether name is acceptable as a final file name. It never
// rewrites the name.
func Check(name string) error {
	if len(name) > MaxNameBytes {
		return ErrTooLong
	}
	if !Grammar.MatchString(name) {
		return ErrGrammar
	}
	return nil
}
