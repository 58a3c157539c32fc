package service

// Error codes surfaced by the generation and chat entrypoints. Every
// failure path returns one of these; nothing in this core is fatal to
// the enclosing process.
const (
	CodeMissingUserID   = "MISSING_USER_ID"
	CodeProfileNotFound = "PROFILE_NOT_FOUND"
	CodeAIError         = "AI_ERROR"
	CodeAIEmpty         = "AI_EMPTY"
	CodeParseError      = "PARSE_ERROR"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeDBError         = "DB_ERROR"

	CodeMissingParams = "MISSING_PARAMS"
	CodeUserNotFound  = "USER_NOT_FOUND"
	CodeNoPlan        = "NO_PLAN"
	CodeInternalError = "INTERNAL_ERROR"
)

// Error is a user-facing failure with a stable machine-readable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}
