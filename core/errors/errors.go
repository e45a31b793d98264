// Package errors provides standardized error types and helpers for the study generator.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRange indicates a chapter range outside a book's bounds
	ErrInvalidRange = errors.New("invalid chapter range")
	// ErrCorruptData indicates corpus data that fails its internal invariants
	ErrCorruptData = errors.New("corrupt corpus data")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "book", "plan", "scope")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// RangeError represents a chapter range query outside a book's bounds
type RangeError struct {
	Book     string // Book the range was queried against
	Start    int    // Requested start chapter (1-indexed)
	End      int    // Requested end chapter (inclusive)
	Chapters int    // Number of chapters the book actually has
	Err      error  // Underlying error, if any
}

func (e *RangeError) Error() string {
	if e.Chapters > 0 {
		return fmt.Sprintf("invalid chapter range %d-%d for %s (%d chapters)", e.Start, e.End, e.Book, e.Chapters)
	}
	return fmt.Sprintf("invalid chapter range %d-%d for %s", e.Start, e.End, e.Book)
}

func (e *RangeError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidRange
}

// DataError represents corpus data that fails load-time validation
type DataError struct {
	Book   string // Book whose data is inconsistent
	Reason string // What invariant was violated
	Err    error  // Underlying error, if any
}

func (e *DataError) Error() string {
	if e.Book != "" {
		return fmt.Sprintf("invalid corpus data for %s: %s", e.Book, e.Reason)
	}
	return fmt.Sprintf("invalid corpus data: %s", e.Reason)
}

func (e *DataError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrCorruptData
}

// ScheduleError represents a generated schedule that violates its invariants.
// This is an internal error: callers must abort before writing any output.
type ScheduleError struct {
	Day    int    // Day number where the violation was detected, if known
	Reason string // What invariant was violated
	Err    error  // Underlying error, if any
}

func (e *ScheduleError) Error() string {
	if e.Day > 0 {
		return fmt.Sprintf("schedule invalid at day %d: %s", e.Day, e.Reason)
	}
	return fmt.Sprintf("schedule invalid: %s", e.Reason)
}

func (e *ScheduleError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "JSON", "XML", "reference")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewRange creates a RangeError
func NewRange(book string, start, end, chapters int) *RangeError {
	return &RangeError{
		Book:     book,
		Start:    start,
		End:      end,
		Chapters: chapters,
	}
}

// NewData creates a DataError
func NewData(book, reason string) *DataError {
	return &DataError{
		Book:   book,
		Reason: reason,
	}
}

// NewSchedule creates a ScheduleError
func NewSchedule(day int, reason string) *ScheduleError {
	return &ScheduleError{
		Day:    day,
		Reason: reason,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// New wraps errors.New for convenience
func New(text string) error {
	return errors.New(text)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
