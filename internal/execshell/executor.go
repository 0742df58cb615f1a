package execshell

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

const (
	gitCommandNameConstant                   = "git"
	githubCommandNameConstant                = "gh"
	loggerNotConfiguredMessageConstant       = "shell executor logger not configured"
	runnerNotConfiguredMessageConstant       = "shell command runner not configured"
	commandNotFoundMessageTemplateConstant   = "required command %q was not found on PATH"
	commandFailedMessageTemplateConstant     = "%s exited with code %d%s"
	commandExecutionMessageTemplateConstant  = "%s could not be executed: %s"
	commandStartedLogMessageConstant         = "shell command started"
	commandCompletedLogMessageConstant       = "shell command completed"
	commandFailedLogMessageConstant          = "shell command failed"
	commandExecutionFailedLogMessageConstant = "shell command execution failed"
	logFieldCommandConstant                  = "command"
	logFieldArgumentsConstant                = "arguments"
	logFieldWorkingDirectoryConstant         = "working_directory"
	logFieldExitCodeConstant                 = "exit_code"
	standardErrorSuffixTemplateConstant      = ": %s"
	commandLabelJoinSeparatorConstant        = " "
	emptyStringConstant                      = ""
)

// CommandName identifies an external executable orchestrated by the executor.
type CommandName string

// Supported external commands.
const (
	CommandGit    CommandName = CommandName(gitCommandNameConstant)
	CommandGitHub CommandName = CommandName(githubCommandNameConstant)
)

// CommandDetails captures the inputs required to run an external command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand couples an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult reports the observable outputs of a completed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands and reports their results.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)
)

// CommandNotFoundError reports a missing external dependency.
type CommandNotFoundError struct {
	Command CommandName
	Cause   error
}

// Error describes the missing dependency.
func (notFoundError CommandNotFoundError) Error() string {
	return fmt.Sprintf(commandNotFoundMessageTemplateConstant, string(notFoundError.Command))
}

// Unwrap exposes the underlying lookup error.
func (notFoundError CommandNotFoundError) Unwrap() error {
	return notFoundError.Cause
}

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trailing standard error output.
func (failedError CommandFailedError) Error() string {
	standardErrorSuffix := emptyStringConstant
	trimmedStandardError := strings.TrimSpace(failedError.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedMessageTemplateConstant, formatCommandLabel(failedError.Command), failedError.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be executed at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionMessageTemplateConstant, formatCommandLabel(executionError.Command), executionError.Cause)
}

// Unwrap exposes the underlying execution failure.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs git and GitHub CLI commands with logging and event hooks.
type ShellExecutor struct {
	logger   *zap.Logger
	runner   CommandRunner
	observer CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor after validating its collaborators.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	return &ShellExecutor{logger: logger, runner: runner, observer: noopCommandEventObserver{}}, nil
}

// RegisterCommandEventObserver routes lifecycle notifications to the provided observer.
func (executor *ShellExecutor) RegisterCommandEventObserver(observer CommandEventObserver) {
	if observer == nil {
		executor.observer = noopCommandEventObserver{}
		return
	}
	executor.observer = observer
}

// ExecuteGit runs the git executable with the supplied details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, CommandGit, details)
}

// ExecuteGitHubCLI runs the GitHub CLI executable with the supplied details.
func (executor *ShellExecutor) ExecuteGitHubCLI(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.execute(executionContext, CommandGitHub, details)
}

func (executor *ShellExecutor) execute(executionContext context.Context, commandName CommandName, details CommandDetails) (ExecutionResult, error) {
	shellCommand := ShellCommand{Name: commandName, Details: details}

	executor.logger.Info(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandConstant, string(commandName)),
		zap.Strings(logFieldArgumentsConstant, details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, details.WorkingDirectory),
	)
	executor.observer.CommandStarted(shellCommand)

	executionResult, runError := executor.runner.Run(executionContext, shellCommand)
	if runError != nil {
		executor.logger.Error(
			commandExecutionFailedLogMessageConstant,
			zap.String(logFieldCommandConstant, string(commandName)),
			zap.Error(runError),
		)
		executor.observer.CommandExecutionFailed(shellCommand, runError)
		return ExecutionResult{}, CommandExecutionError{Command: shellCommand, Cause: runError}
	}

	executor.observer.CommandCompleted(shellCommand, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandConstant, string(commandName)),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
		)
		return executionResult, CommandFailedError{Command: shellCommand, Result: executionResult}
	}

	executor.logger.Info(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandConstant, string(commandName)),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)

	return executionResult, nil
}

// CheckCommandAvailable verifies the named executable is resolvable on PATH.
func CheckCommandAvailable(commandName CommandName) error {
	_, lookupError := exec.LookPath(string(commandName))
	if lookupError != nil {
		return CommandNotFoundError{Command: commandName, Cause: lookupError}
	}
	return nil
}

func formatCommandLabel(command ShellCommand) string {
	labelParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		labelParts = append(labelParts, strings.Join(command.Details.Arguments, commandLabelJoinSeparatorConstant))
	}
	return strings.Join(labelParts, commandLabelJoinSeparatorConstant)
}
