package skeletons

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/skeleton/internal/execshell"
	"github.com/temirov/skeleton/internal/githubcli"
	"github.com/temirov/skeleton/internal/ui"
)

const (
	commandUseConstant                    = "list"
	commandShortDescriptionConstant       = "List available skeleton repositories"
	commandLongDescriptionConstant        = "list prints every skeleton repository published by the source organization, one aligned name and description per line."
	commandExecutionErrorTemplateConstant = "skeleton listing failed: %w"
	unexpectedArgumentsMessageConstant    = "list does not accept positional arguments"
	flagSourceOrganizationNameConstant    = "src-org"
	flagSourceOrganizationUsageConstant   = "Organization whose skeleton repositories are listed"
	defaultSourceOrganizationConstant     = "cisagov"
	defaultDiscoveryTopicConstant         = "skeleton"
)

// ErrUnexpectedArguments reports positional arguments supplied to the listing command.
var ErrUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the listing configuration resolved by the application.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console log formatting was selected.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the Cobra command that lists skeleton repositories.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	Searcher                     RepositorySearcher
}

// Build constructs the list command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagSourceOrganizationNameConstant, "", flagSourceOrganizationUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}

	options := builder.resolveOptions(command)

	logger := builder.resolveLogger()
	searcher, searcherError := builder.resolveSearcher(logger)
	if searcherError != nil {
		return searcherError
	}

	service, serviceError := NewService(logger, searcher, command.OutOrStdout())
	if serviceError != nil {
		return serviceError
	}

	listError := service.List(command.Context(), options)
	if listError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, listError)
	}

	return nil
}

func (builder *CommandBuilder) resolveOptions(command *cobra.Command) ListOptions {
	configuration := builder.resolveConfiguration()

	sourceOrganization := configuration.SourceOrganization
	if command.Flags().Changed(flagSourceOrganizationNameConstant) {
		flagValue, _ := command.Flags().GetString(flagSourceOrganizationNameConstant)
		trimmedFlagValue := strings.TrimSpace(flagValue)
		if len(trimmedFlagValue) > 0 {
			sourceOrganization = trimmedFlagValue
		}
	}
	if len(sourceOrganization) == 0 {
		sourceOrganization = defaultSourceOrganizationConstant
	}

	discoveryTopic := configuration.DiscoveryTopic
	if len(discoveryTopic) == 0 {
		discoveryTopic = defaultDiscoveryTopicConstant
	}

	return ListOptions{SourceOrganization: sourceOrganization, DiscoveryTopic: discoveryTopic}
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

func (builder *CommandBuilder) resolveSearcher(logger *zap.Logger) (RepositorySearcher, error) {
	if builder.Searcher != nil {
		return builder.Searcher, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner)
	if executorError != nil {
		return nil, executorError
	}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		shellExecutor.RegisterCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return githubcli.NewClient(shellExecutor)
}
