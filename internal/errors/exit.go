package errors

import "errors"

// Exit codes returned by the pkginit binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates an invalid invocation or option value.
	ExitValidationError = 2

	// ExitConversionError indicates a bundle or theme conversion failed.
	ExitConversionError = 3

	// ExitFilesystemError indicates materialization hit a filesystem error.
	ExitFilesystemError = 4

	// ExitNotFound indicates a template or conversion source was not found.
	ExitNotFound = 5
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	// Code is the process exit code.
	Code int

	// Err is the underlying error.
	Err error

	// Printed is set once the command layer has already shown the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given error and code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the exit code for err.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrConversion):
		return ExitConversionError
	case errors.Is(err, ErrFilesystem):
		return ExitFilesystemError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConversionError:
		return "Conversion Error"
	case ExitFilesystemError:
		return "Filesystem Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
