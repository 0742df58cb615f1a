package clone

import "strings"

const (
	configurationSourceOrganizationKeyConstant      = "source_organization"
	configurationDestinationOrganizationKeyConstant = "destination_organization"
	configurationDefaultBranchKeyConstant           = "default_branch"
	configurationKeySeparatorConstant               = "."
)

// CommandConfiguration captures configuration values for the clone command.
type CommandConfiguration struct {
	SourceOrganization      string `mapstructure:"source_organization"`
	DestinationOrganization string `mapstructure:"destination_organization"`
	DefaultBranch           string `mapstructure:"default_branch"`
}

// DefaultCommandConfiguration provides baseline configuration values for clones.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SourceOrganization:      defaultSourceOrganizationConstant,
		DestinationOrganization: defaultDestinationOrganizationConstant,
		DefaultBranch:           defaultBranchNameConstant,
	}
}

// DefaultConfigurationValues exposes clone defaults for configuration registration.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationSourceOrganizationKeyConstant:      defaults.SourceOrganization,
		rootKey + configurationKeySeparatorConstant + configurationDestinationOrganizationKeyConstant: defaults.DestinationOrganization,
		rootKey + configurationKeySeparatorConstant + configurationDefaultBranchKeyConstant:           defaults.DefaultBranch,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.SourceOrganization = strings.TrimSpace(configuration.SourceOrganization)
	sanitized.DestinationOrganization = strings.TrimSpace(configuration.DestinationOrganization)
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)

	return sanitized
}
