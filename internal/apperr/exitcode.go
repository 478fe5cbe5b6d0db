package apperr

import (
	"context"
	"errors"
)

// Process exit codes. Scripts can branch on these.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitExtraction  = 3
	ExitNoModel     = 4
	ExitBackend     = 5
	ExitRename      = 6
	ExitInterrupted = 130
)

// ExitCode maps an error returned by the pipeline to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	switch KindOf(err) {
	case KindInvalidInput:
		return ExitUsage
	case KindNoExtractableText, KindMetadataExtractionFailed,
		KindMalformedResponse, KindInvalidYear, KindEmptyField:
		return ExitExtraction
	case KindNoModelAvailable:
		return ExitNoModel
	case KindBackendUnreachable:
		return ExitBackend
	case KindTargetExists, KindSourceMissing, KindRenameFailed:
		return ExitRename
	default:
		return ExitFailure
	}
}
