// Package apperr defines the failure taxonomy shared by every stage of the
// rename pipeline and maps it onto process exit codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindNoExtractableText
	KindNoModelAvailable
	KindBackendUnreachable
	KindMalformedResponse
	KindInvalidYear
	KindEmptyField
	KindMetadataExtractionFailed
	KindTargetExists
	KindSourceMissing
	KindRenameFailed
)

var kindNames = map[Kind]string{
	KindUnknown:                  "Unknown",
	KindInvalidInput:             "InvalidInput",
	KindNoExtractableText:        "NoExtractableText",
	KindNoModelAvailable:         "NoModelAvailable",
	KindBackendUnreachable:       "BackendUnreachable",
	KindMalformedResponse:        "MalformedResponse",
	KindInvalidYear:              "InvalidYear",
	KindEmptyField:               "EmptyField",
	KindMetadataExtractionFailed: "MetadataExtractionFailed",
	KindTargetExists:             "TargetExists",
	KindSourceMissing:            "SourceMissing",
	KindRenameFailed:             "RenameFailed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsValidation reports whether k is one of the response-validation sub-kinds.
func (k Kind) IsValidation() bool {
	return k == KindMalformedResponse || k == KindInvalidYear || k == KindEmptyField
}

// Error is a classified failure. Remedy, when set, is user-facing advice on
// how to get past the failure (e.g. how to start the backend).
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Remedy  string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so sentinels like ErrTargetExists
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// WithRemedy returns a copy of e carrying remedy text.
func (e *Error) WithRemedy(remedy string) *Error {
	cp := *e
	cp.Remedy = remedy
	return &cp
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput             = &Error{Kind: KindInvalidInput}
	ErrNoExtractableText        = &Error{Kind: KindNoExtractableText}
	ErrNoModelAvailable         = &Error{Kind: KindNoModelAvailable}
	ErrBackendUnreachable       = &Error{Kind: KindBackendUnreachable}
	ErrMalformedResponse        = &Error{Kind: KindMalformedResponse}
	ErrInvalidYear              = &Error{Kind: KindInvalidYear}
	ErrEmptyField               = &Error{Kind: KindEmptyField}
	ErrMetadataExtractionFailed = &Error{Kind: KindMetadataExtractionFailed}
	ErrTargetExists             = &Error{Kind: KindTargetExists}
	ErrSourceMissing            = &Error{Kind: KindSourceMissing}
	ErrRenameFailed             = &Error{Kind: KindRenameFailed}
)

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Field creates a validation Error for a single metadata field.
func Field(kind Kind, field, message string) *Error {
	return &Error{Kind: kind, Field: field, Message: message}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// RemedyOf returns the first remedy text found in err's chain.
func RemedyOf(err error) string {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Remedy != "" {
			return e.Remedy
		}
		err = errors.Unwrap(err)
	}
	return ""
}
