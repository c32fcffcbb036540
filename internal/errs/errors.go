package errs

import "errors"

type Code string

const (
	CodeNotFound          Code = "not_found"
	CodeInvalidAnswerSet  Code = "invalid_answer_set"
	CodeInvalidOption     Code = "invalid_option"
	CodeInterpretationGap Code = "interpretation_gap"
	CodeAlreadyInProgress Code = "already_in_progress"
	CodeSessionTerminal   Code = "session_already_terminal"
	CodePersistence       Code = "persistence_error"
	CodeInvalidDefinition Code = "invalid_definition"
)

// Error is the error type shared by the catalog, scoring engine, session
// store and repository layers. Callers branch on Code rather than on
// message text.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func NotFound(msg string) error          { return New(CodeNotFound, msg) }
func InvalidAnswerSet(msg string) error  { return New(CodeInvalidAnswerSet, msg) }
func InvalidOption(msg string) error     { return New(CodeInvalidOption, msg) }
func InterpretationGap(msg string) error { return New(CodeInterpretationGap, msg) }
func AlreadyInProgress(msg string) error { return New(CodeAlreadyInProgress, msg) }
func SessionTerminal(msg string) error   { return New(CodeSessionTerminal, msg) }
func Persistence(msg string, err error) error {
	return Wrap(CodePersistence, msg, err)
}
