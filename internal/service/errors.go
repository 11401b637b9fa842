package service

import "errors"

// Kind classifies a service failure so callers can map it exhaustively.
type Kind int

const (
	KindNotFound Kind = iota + 1
	// KindUnauthenticated means the caller's identity could not be
	// established; KindUnauthorized means it is known but not allowed.
	KindUnauthenticated
	KindUnauthorized
	KindPreconditionFailed
	KindInvalidRequest
	KindConflict
	KindComputationInvalid
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindInvalidRequest:
		return "invalid_request"
	case KindConflict:
		return "conflict"
	case KindComputationInvalid:
		return "computation_invalid"
	case KindPersistence:
		return "persistence_failure"
	default:
		return "unknown"
	}
}

// Failure codes surfaced to API clients.
const (
	CodeChallengerNotFound     = "RETADOR_NOT_FOUND"
	CodeDefenderNotFound       = "RETADO_NOT_FOUND"
	CodeUnauthorizedChallenger = "UNAUTHORIZED_RETADOR"
	CodeChallengerOffline      = "RETADOR_OFFLINE"
	CodeDefenderOffline        = "RETADO_OFFLINE"
	CodeDefenderLowHP          = "RETADO_LOW_HP"
	CodeSameCharacter          = "SAME_CHARACTER"
	CodeComputationInvalid     = "COMPUTATION_INVALID"
	CodeLookupFailed           = "LOOKUP_FAILED"
	CodeHPUpdateFailed         = "HP_UPDATE_FAILED"
	CodeRewardUpdateFailed     = "REWARD_UPDATE_FAILED"
	CodeHistoryWriteFailed     = "HISTORY_WRITE_FAILED"
	CodeTransactionFailed      = "TRANSACTION_FAILED"

	CodeCharacterNotFound    = "CHARACTER_NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNoBattlesFound       = "NO_BATTLES_FOUND"
	CodeHistoryReadFailed    = "HISTORY_READ_FAILED"
	CodeOpponentLookupFailed = "OPPONENT_LOOKUP_FAILED"

	CodeMissingData        = "MISSING_DATA"
	CodeInvalidData        = "INVALID_DATA"
	CodeUserExists         = "USER_EXISTS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserInactive       = "USER_INACTIVE"
	CodeInternalFailure    = "INTERNAL_ERROR"
)

// Error is the tagged failure returned by every service operation.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Details carries collaborator-provided context (driver error text).
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func persistenceError(code, msg string, err error) *Error {
	e := &Error{Kind: KindPersistence, Code: code, Message: msg, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// AsError extracts the tagged error from err, if any.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CodeOf returns the failure code carried by err, or "".
func CodeOf(err error) string {
	if se, ok := AsError(err); ok {
		return se.Code
	}
	return ""
}
