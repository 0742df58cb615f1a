package clone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/skeleton/internal/execshell"
	"github.com/temirov/skeleton/internal/githubcli"
	"github.com/temirov/skeleton/internal/gitrepo"
	"github.com/temirov/skeleton/internal/ui"
)

const (
	commandUseConstant                     = "clone [--change-dir <dir>] [--dest-org <name>] [--src-org <name>] <parent-repo-name> <new-repo-name>"
	commandShortDescriptionConstant        = "Clone a skeleton repository into a renamed destination repository"
	commandLongDescriptionConstant         = "clone copies a skeleton repository, rewrites its repository references, records lineage, publishes the initial branches, and applies the standard repository policy."
	commandExecutionErrorTemplateConstant  = "skeleton clone failed: %w"
	missingArgumentsMessageConstant        = "clone requires a parent repository name and a new repository name"
	flagChangeDirectoryNameConstant        = "change-dir"
	flagChangeDirectoryUsageConstant       = "Directory in which the new repository is created"
	flagDestinationOrganizationConstant    = "dest-org"
	flagDestinationOrganizationUsageConst  = "Organization owning the new repository"
	flagSourceOrganizationNameConstant     = "src-org"
	flagSourceOrganizationUsageConstant    = "Organization owning the skeleton repository"
	expectedPositionalArgumentsConstant    = 2
	sourceRepositoryArgumentIndexConstant  = 0
	destinationRepositoryArgumentIndex     = 1
	defaultSourceOrganizationConstant      = "cisagov"
	defaultDestinationOrganizationConstant = "cisagov"
	defaultBranchNameConstant              = "develop"
	defaultWorkingDirectoryConstant        = "."
)

// ErrMissingRepositoryArguments reports an invocation without both repository names.
var ErrMissingRepositoryArguments = errors.New(missingArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the clone configuration resolved by the application.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console log formatting was selected.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the Cobra command that clones skeleton repositories.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	GitHub                       GitHubOperations
	Git                          GitOperations
	FileSystem                   FileSystem
	Status                       StatusReporter
}

// Build constructs the clone command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  validatePositionalArguments,
		RunE:  builder.run,
	}

	command.Flags().String(flagChangeDirectoryNameConstant, defaultWorkingDirectoryConstant, flagChangeDirectoryUsageConstant)
	command.Flags().String(flagDestinationOrganizationConstant, "", flagDestinationOrganizationUsageConst)
	command.Flags().String(flagSourceOrganizationNameConstant, "", flagSourceOrganizationUsageConstant)

	return command, nil
}

func validatePositionalArguments(_ *cobra.Command, arguments []string) error {
	if len(arguments) != expectedPositionalArgumentsConstant {
		return ErrMissingRepositoryArguments
	}
	return nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.resolveOptions(command, arguments)

	logger := builder.resolveLogger()
	dependencies, dependenciesError := builder.resolveDependencies(command, logger)
	if dependenciesError != nil {
		return dependenciesError
	}

	service, serviceError := NewService(dependencies)
	if serviceError != nil {
		return serviceError
	}

	executionError := service.Execute(command.Context(), options)
	if executionError != nil {
		creationFailure := RemoteCreationFailedError{}
		if errors.As(executionError, &creationFailure) {
			return executionError
		}
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command, arguments []string) Options {
	configuration := builder.resolveConfiguration()

	sourceOrganization := resolveStringFlag(command, flagSourceOrganizationNameConstant, configuration.SourceOrganization)
	if len(sourceOrganization) == 0 {
		sourceOrganization = defaultSourceOrganizationConstant
	}

	destinationOrganization := resolveStringFlag(command, flagDestinationOrganizationConstant, configuration.DestinationOrganization)
	if len(destinationOrganization) == 0 {
		destinationOrganization = defaultDestinationOrganizationConstant
	}

	workingDirectoryValue, _ := command.Flags().GetString(flagChangeDirectoryNameConstant)
	workingDirectory := strings.TrimSpace(workingDirectoryValue)
	if len(workingDirectory) == 0 {
		workingDirectory = defaultWorkingDirectoryConstant
	}

	defaultBranch := configuration.DefaultBranch
	if len(defaultBranch) == 0 {
		defaultBranch = defaultBranchNameConstant
	}

	return Options{
		SourceRepository:        arguments[sourceRepositoryArgumentIndexConstant],
		DestinationRepository:   arguments[destinationRepositoryArgumentIndex],
		SourceOrganization:      sourceOrganization,
		DestinationOrganization: destinationOrganization,
		WorkingDirectory:        workingDirectory,
		DefaultBranch:           defaultBranch,
	}
}

func resolveStringFlag(command *cobra.Command, flagName string, configuredValue string) string {
	resolvedValue := configuredValue
	if command.Flags().Changed(flagName) {
		flagValue, _ := command.Flags().GetString(flagName)
		trimmedFlagValue := strings.TrimSpace(flagValue)
		if len(trimmedFlagValue) > 0 {
			resolvedValue = trimmedFlagValue
		}
	}
	return resolvedValue
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}

	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveDependencies(command *cobra.Command, logger *zap.Logger) (Dependencies, error) {
	dependencies := Dependencies{
		Logger:     logger,
		GitHub:     builder.GitHub,
		Git:        builder.Git,
		FileSystem: builder.FileSystem,
		Status:     builder.Status,
	}

	if dependencies.GitHub == nil || dependencies.Git == nil {
		commandRunner := execshell.NewOSCommandRunner()
		shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
		if executorError != nil {
			return Dependencies{}, executorError
		}
		if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
			shellExecutor.RegisterCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
		}

		if dependencies.GitHub == nil {
			gitHubClient, clientError := githubcli.NewClient(shellExecutor)
			if clientError != nil {
				return Dependencies{}, clientError
			}
			dependencies.GitHub = gitHubClient
		}

		if dependencies.Git == nil {
			repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
			if managerError != nil {
				return Dependencies{}, managerError
			}
			dependencies.Git = repositoryManager
		}
	}

	if dependencies.FileSystem == nil {
		dependencies.FileSystem = NewOSFileSystem()
	}

	if dependencies.Status == nil {
		dependencies.Status = ui.NewStatusPrinter(command.OutOrStdout(), command.ErrOrStderr())
	}

	return dependencies, nil
}
