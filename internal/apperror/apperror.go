package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrConflict      = errors.New("conflict")
	ErrLikeUnderflow = errors.New("like counter underflow")
)

// Machine-readable error codes returned in the response envelope's
// "message" field. Clients match on these, never on the human text.
const (
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeUserAlreadyExists   = "USER_ALREADY_EXISTS"
	CodeStudyGroupNotFound  = "STUDY_GROUP_NOT_FOUND"
	CodeStudyMemberNotFound = "STUDY_MEMBER_NOT_FOUND"
	CodeStudyDataNotFound   = "STUDY_DATA_NOT_FOUND"
	CodeQuestionNotFound    = "QUESTION_NOT_FOUND"
	CodeLikeNotMinus        = "QUESTION_LIKE_NOT_MINUS"
	CodeValidationFailed    = "VALIDATION_FAILED"
)

type AppError struct {
	Err     error  // sentinel error, drives errors.Is
	Code    string // machine-readable code, e.g. USER_NOT_FOUND
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(code, resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Code:    code,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Code:    CodeValidationFailed,
		Message: message,
		Field:   field,
	}
}

func Conflict(code, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Code:    code,
		Message: message,
	}
}

// LikeUnderflow reports an attempt to decrement a like counter that is
// already at zero. HTTP handlers map this to 400 Bad Request.
func LikeUnderflow(questionID string) *AppError {
	return &AppError{
		Err:     ErrLikeUnderflow,
		Code:    CodeLikeNotMinus,
		Message: fmt.Sprintf("like count of question %s cannot go below zero", questionID),
	}
}
