package script

import "fmt"

// ErrKind classifies script generation failures so callers can distinguish
// bad input from a failed dependency.
type ErrKind string

const (
	// ErrKindInput: rejected before any external call (too few stories or hosts).
	ErrKindInput ErrKind = "input"
	// ErrKindModel: the dialogue model call itself failed.
	ErrKindModel ErrKind = "model"
	// ErrKindParse: the model reply was empty or not decodable as JSON.
	ErrKindParse ErrKind = "parse"
	// ErrKindStructure: the decoded script is missing required structure.
	ErrKindStructure ErrKind = "structure"
)

// GenerationError is the typed error for all fatal script generation
// failures. The underlying cause is preserved for diagnostics.
type GenerationError struct {
	Kind    ErrKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }

func inputErr(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: ErrKindInput, Message: fmt.Sprintf(format, args...)}
}

func parseErr(msg string, err error) *GenerationError {
	return &GenerationError{Kind: ErrKindParse, Message: msg, Err: err}
}

func structureErr(format string, args ...any) *GenerationError {
	return &GenerationError{Kind: ErrKindStructure, Message: fmt.Sprintf(format, args...)}
}
