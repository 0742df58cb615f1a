package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/skeleton/internal/clone"
	"github.com/temirov/skeleton/internal/execshell"
	"github.com/temirov/skeleton/internal/skeletons"
)

// Process exit codes reported by the CLI entrypoint.
const (
	ExitCodeSuccess            = 0
	ExitCodeFailure            = 1
	ExitCodeRecoverableFailure = 255
)

const (
	usageErrorTemplateConstant     = "invalid invocation: %v"
	unknownCommandTemplateConstant = "unknown command %q"
	unknownCommandPrefixConstant   = "unknown command"
)

// UsageError marks a malformed invocation such as an unsupported flag.
type UsageError struct {
	Cause error
}

// Error describes the malformed invocation.
func (usageError UsageError) Error() string {
	return fmt.Sprintf(usageErrorTemplateConstant, usageError.Cause)
}

// Unwrap exposes the underlying parsing failure.
func (usageError UsageError) Unwrap() error {
	return usageError.Cause
}

// DetermineExitCode maps an execution error onto the process exit code.
// Remote-creation failures and malformed invocations exit with 255; missing
// external dependencies and every other failure exit with 1.
func DetermineExitCode(executionError error) int {
	if executionError == nil {
		return ExitCodeSuccess
	}

	remoteCreationFailure := clone.RemoteCreationFailedError{}
	if errors.As(executionError, &remoteCreationFailure) {
		return ExitCodeRecoverableFailure
	}

	commandNotFoundFailure := execshell.CommandNotFoundError{}
	if errors.As(executionError, &commandNotFoundFailure) {
		return ExitCodeFailure
	}

	if isUsageFailure(executionError) {
		return ExitCodeRecoverableFailure
	}

	return ExitCodeFailure
}

func isUsageFailure(executionError error) bool {
	usageFailure := UsageError{}
	if errors.As(executionError, &usageFailure) {
		return true
	}
	if errors.Is(executionError, skeletons.ErrUnexpectedArguments) {
		return true
	}
	if errors.Is(executionError, clone.ErrMissingRepositoryArguments) {
		return true
	}

	return strings.HasPrefix(executionError.Error(), unknownCommandPrefixConstant)
}
