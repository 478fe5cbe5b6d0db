// Package filename turns paper metadata into canonical PDF file names and
// checks names against the naming grammar.
//
// # Naming Grammar
//
// Every name produced or accepted by this package has the shape
//
//	<author>-<year>-<title>.pdf
//
// where author and title are lower-case ASCII words joined by single dashes
// and year has four digits:
//
//	^[a-z0-9]+(-[a-z0-9]+)*-[0-9]{4}-[a-z0-9]+(-[a-z0-9]+)*\.pdf$
//
// # Formatting
//
//	meta := model.PaperMetadata{Author: "Vaswani", Year: 2017, Title: "Attention Is All You Need"}
//	name := filename.Format(meta, filename.DefaultMaxStem)
//	// name == "vaswani-2017-attention-is-all-you-need.pdf"
//
// Letters outside a-z (accented or non-Latin) are dropped, not
// transliterated: "Gödel" becomes "gdel".
//
// # Checking User Input
//
// Check validates a hand-typed name without changing it:
//
//	if err := filename.Check("My Paper.pdf"); err != nil {
//	    // ask again
//	}
package filename
