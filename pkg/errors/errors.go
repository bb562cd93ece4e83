// Package errors provides structured error handling for driftkit utilities.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindEngine indicates a chart engine failure.
	KindEngine
	// KindTheme indicates a chart theme parsing or compatibility error.
	KindTheme
	// KindTransform indicates a failure inside a user-supplied transform.
	KindTransform
	// KindConfig indicates malformed configuration passed to a utility.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindEngine:
		return "engine"
	case KindTheme:
		return "theme"
	case KindTransform:
		return "transform"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// KitError represents a structured error raised by a driftkit component.
type KitError struct {
	// Op is the operation that failed (e.g., "chart.ChartController.Attach").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *KitError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *KitError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "timing.ChunkScheduler").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by driftkit components.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *KitError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
