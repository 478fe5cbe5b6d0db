package model

import "path/filepath"

// FilenameProposal is a candidate name for a PDF, pending the user's decision.
type FilenameProposal struct {
	// Raw is the metadata the proposal was formatted from. For a proposal
	// typed in by hand after extraction failed it is the zero value.
	Raw PaperMetadata

	// Formatted is the proposed base name, e.g.
	// "vaswani-2017-attention-is-all-you-need.pdf".
	Formatted string

	// SourcePath is the path of the PDF being renamed.
	SourcePath string

	// Edited is set once the user has replaced Formatted.
	Edited bool
}

// TargetPath returns the full path the file would be renamed to. The file
// stays in its current directory.
func (p FilenameProposal) TargetPath() string {
	return filepath.Join(filepath.Dir(p.SourcePath), p.Formatted)
}

// SourceName returns the current base name of the PDF.
func (p FilenameProposal) SourceName() string {
	return filepath.Base(p.SourcePath)
}

// WithName returns a copy of p that proposes name instead.
func (p FilenameProposal) WithName(name string) FilenameProposal {
	p.Formatted = name
	p.Edited = true
	return p
}
