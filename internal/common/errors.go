package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can pick a status code
// without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindImageDecode
	KindOCREngine
	KindAuthentication
	KindService
	KindInvalidRequest
	KindConfig
)

var kindCodes = map[Kind]string{
	KindUnknown:        "INTERNAL_ERROR",
	KindImageDecode:    "IMAGE_DECODE_ERROR",
	KindOCREngine:      "OCR_ENGINE_ERROR",
	KindAuthentication: "AUTHENTICATION_FAILURE",
	KindService:        "SERVICE_FAILURE",
	KindInvalidRequest: "INVALID_REQUEST",
	KindConfig:         "CONFIG_ERROR",
}

// Code is the stable machine-readable name of the kind.
func (k Kind) Code() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return kindCodes[KindUnknown]
}

func (k Kind) String() string { return k.Code() }

// AppError represents application-specific errors
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrEngine       = errors.New("ocr engine unavailable")
	ErrNoChoices    = errors.New("no choices in chat completion response")
)

// NewAppError builds an AppError whose Code follows its Kind.
func NewAppError(kind Kind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    kind.Code(),
		Message: message,
		Cause:   cause,
	}
}

// KindOf returns the Kind of the first AppError in err's chain.
func KindOf(err error) Kind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
