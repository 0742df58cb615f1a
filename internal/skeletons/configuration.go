package skeletons

import "strings"

const (
	configurationSourceOrganizationKeyConstant = "source_organization"
	configurationDiscoveryTopicKeyConstant     = "discovery_topic"
	configurationKeySeparatorConstant          = "."
)

// CommandConfiguration captures configuration values for the skeleton listing command.
type CommandConfiguration struct {
	SourceOrganization string `mapstructure:"source_organization"`
	DiscoveryTopic     string `mapstructure:"discovery_topic"`
}

// DefaultCommandConfiguration provides baseline configuration values for skeleton listings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		SourceOrganization: defaultSourceOrganizationConstant,
		DiscoveryTopic:     defaultDiscoveryTopicConstant,
	}
}

// DefaultConfigurationValues exposes listing defaults for configuration registration.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationSourceOrganizationKeyConstant: defaults.SourceOrganization,
		rootKey + configurationKeySeparatorConstant + configurationDiscoveryTopicKeyConstant:     defaults.DiscoveryTopic,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.SourceOrganization = strings.TrimSpace(configuration.SourceOrganization)
	sanitized.DiscoveryTopic = strings.TrimSpace(configuration.DiscoveryTopic)

	return sanitized
}
