package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned when recognizer output arrays differ in length
	ErrMalformedInput = errors.New("malformed recognizer output")

	// ErrDocumentNotFound is returned when a document ID does not exist
	ErrDocumentNotFound = errors.New("document not found")

	// ErrImageLoad is returned when an input image cannot be opened or decoded
	ErrImageLoad = errors.New("could not load image")

	// ErrRecognition is returned when the OCR engine fails
	ErrRecognition = errors.New("text recognition failed")

	// ErrEmptyQuestion is returned when a question is blank
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrLLMRequestFailed is returned when the generative model cannot produce an answer
	ErrLLMRequestFailed = errors.New("llm request failed")
)

// ErrorKind groups errors by the stage that produced them
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindImage      ErrorKind = "image"
	KindOCR        ErrorKind = "ocr"
	KindStorage    ErrorKind = "storage"
	KindLLM        ErrorKind = "llm"
	KindConfig     ErrorKind = "config"
)

// Error carries the failing operation and its kind alongside the cause
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new kinded error
func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
