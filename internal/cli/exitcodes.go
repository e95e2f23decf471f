package cli

import (
	"errors"

	"github.com/yaklabco/mdmath/internal/configloader"
	"github.com/yaklabco/mdmath/pkg/dollarmath"
	"github.com/yaklabco/mdmath/pkg/runner"
)

// Exit codes for mdmath.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitErrors indicates the run completed but found errors or failed files.
	ExitErrors = 1

	// ExitWarnings indicates warnings were found in strict mode.
	ExitWarnings = 2

	// ExitConfigError indicates configuration file or flag errors.
	ExitConfigError = 65
)

// ErrIssuesFound is the sentinel wrapped by every IssuesError.
var ErrIssuesFound = errors.New("math issues found")

// IssuesError signals that a run finished with findings that fail the
// exit status. It carries no message worth logging.
type IssuesError struct {
	Code int
}

func (e *IssuesError) Error() string {
	if e.Code == ExitWarnings {
		return "math warnings found (strict)"
	}
	return ErrIssuesFound.Error()
}

func (e *IssuesError) Unwrap() error {
	return ErrIssuesFound
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasFailures() {
		return ExitErrors
	}
	if strict && result.HasWarnings() {
		return ExitWarnings
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var issues *IssuesError
	if errors.As(err, &issues) {
		return issues.Code
	}

	var invalid *configloader.ValidationError
	if errors.As(err, &invalid) ||
		errors.Is(err, dollarmath.ErrUnknownNormalizer) ||
		errors.Is(err, dollarmath.ErrUnknownRenderer) ||
		errors.Is(err, dollarmath.ErrNilNormalizer) {
		return ExitConfigError
	}

	return ExitErrors
}

// issuesError returns nil for a clean result, or an IssuesError carrying the
// exit code the result earns.
func issuesError(result *runner.Result, strict bool) error {
	code := ExitCodeFromResult(result, strict)
	if code == ExitSuccess {
		return nil
	}
	return &IssuesError{Code: code}
}
