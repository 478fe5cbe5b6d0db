// Package model defines the value types passed between the stages of the
// paper-renamer pipeline.
//
// # PaperMetadata
//
// PaperMetadata is the validated author/year/title triple inferred by the
// language model. Only the metadata validator builds one:
//
//	meta, err := metadata.Validate(raw, time.Now())
//	fmt.Println(meta.Author, meta.Year, meta.Title)
//
// # FilenameProposal
//
// FilenameProposal pairs the metadata with the canonical filename derived
// from it and the PDF it is meant for:
//
//	p := model.FilenameProposal{
//	    Raw:        meta,
//	    Formatted:  filename.Format(meta, filename.DefaultMaxStem),
//	    SourcePath: "/papers/1706.03762.pdf",
//	}
//
// A user edit replaces Formatted wholesale and sets Edited.
//
// # ModelChoice
//
// ModelChoice records which Ollama model runs the extraction and why it was
// picked (requested on the command line, already running, or merely
// installed).
//
// All types are plain values; none of them outlive a single invocation.
package model
