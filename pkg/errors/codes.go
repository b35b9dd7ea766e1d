package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// The prefix before the first underscore names the owning module.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal        ErrorCode = "COMMON_INTERNAL"
	ErrCodeInvalidArgument ErrorCode = "COMMON_INVALID_ARGUMENT"
	ErrCodeNotFound        ErrorCode = "COMMON_NOT_FOUND"
	ErrCodeCancelled       ErrorCode = "COMMON_CANCELLED"
)

// Molecule Module Error Codes
const (
	ErrCodeMissingProperty ErrorCode = "MOL_MISSING_PROPERTY"
	ErrCodeInvalidCast     ErrorCode = "MOL_INVALID_CAST"
	ErrCodeIncompatible    ErrorCode = "MOL_INCOMPATIBLE"
)

// Format Module Error Codes
const (
	ErrCodeParse ErrorCode = "FMT_PARSE"
)

// Short aliases used at call sites.
const (
	CodeInternal        = ErrCodeInternal
	CodeInvalidArgument = ErrCodeInvalidArgument
	CodeNotFound        = ErrCodeNotFound
	CodeCancelled       = ErrCodeCancelled
	CodeMissingProperty = ErrCodeMissingProperty
	CodeInvalidCast     = ErrCodeInvalidCast
	CodeIncompatible    = ErrCodeIncompatible
	CodeParse           = ErrCodeParse

	CodeOK      = ErrorCode("OK")
	CodeUnknown = ErrorCode("UNKNOWN")
)

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeInvalidArgument: "invalid argument",
	ErrCodeNotFound:        "not found",
	ErrCodeCancelled:       "operation cancelled",
	ErrCodeMissingProperty: "required molecule property is missing",
	ErrCodeInvalidCast:     "molecule property has the wrong type",
	ErrCodeIncompatible:    "objects do not describe the same molecule",
	ErrCodeParse:           "failed to parse structure",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsCallerError reports whether the code describes bad input that the caller
// can fix (as opposed to an internal failure).
func IsCallerError(code ErrorCode) bool {
	switch code {
	case ErrCodeInvalidArgument, ErrCodeNotFound, ErrCodeMissingProperty,
		ErrCodeInvalidCast, ErrCodeIncompatible, ErrCodeParse:
		return true
	default:
		return false
	}
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
