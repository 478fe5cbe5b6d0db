// Package extract turns a PDF into a filename proposal.
//
// # Orchestrator
//
// The Orchestrator runs one extraction:
//
//  1. Read the leading text of the PDF
//  2. Build a deterministic prompt asking for author, year and title
//  3. Call the model under a per-call timeout
//  4. Validate the response, retrying with the same prompt when it is rejected
//  5. Format the filename
//
// # Basic Usage
//
//	orch := extract.NewOrchestrator(pdfExtractor, ollamaClient, extract.DefaultOptions(), logger,
//	    func(event extract.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	proposal, err := orch.Extract(ctx, "paper.pdf", choice)
//
// # Retry Logic
//
// Only validation rejections are retried, at most Options.MaxRetries times
// after the first attempt. A missing text layer or an unreachable backend
// ends the run at once.
package extract
