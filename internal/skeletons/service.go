package skeletons

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/skeleton/internal/githubcli"
)

const (
	listingLineTemplateConstant            = "%-*s  %s\n"
	listingLogMessageConstant              = "listed skeleton repositories"
	organizationLogFieldConstant           = "organization"
	repositoryCountLogFieldConstant        = "repository_count"
	loggerRequiredMessageConstant          = "logger must not be nil"
	searcherRequiredMessageConstant        = "repository searcher must not be nil"
	outputWriterRequiredMessageConstant    = "output writer must not be nil"
	organizationRequiredMessageConstant    = "source organization must not be empty"
	discoveryTopicRequiredMessageConstant  = "discovery topic must not be empty"
	repositorySearchFailedTemplateConstant = "skeleton repository search failed: %w"
	listingRenderingFailedTemplateConstant = "skeleton listing rendering failed: %w"
)

// RepositorySearcher locates skeleton repositories belonging to an organization.
type RepositorySearcher interface {
	SearchSkeletonRepositories(executionContext context.Context, organization string, topic string) ([]githubcli.SkeletonRepository, error)
}

// ListOptions captures the inputs required to produce a skeleton listing.
type ListOptions struct {
	SourceOrganization string
	DiscoveryTopic     string
}

// Service retrieves skeleton repositories and writes an aligned listing.
type Service struct {
	logger       *zap.Logger
	searcher     RepositorySearcher
	outputWriter io.Writer
}

// NewService validates the collaborators and constructs a listing service.
func NewService(logger *zap.Logger, searcher RepositorySearcher, outputWriter io.Writer) (*Service, error) {
	if logger == nil {
		return nil, errors.New(loggerRequiredMessageConstant)
	}
	if searcher == nil {
		return nil, errors.New(searcherRequiredMessageConstant)
	}
	if outputWriter == nil {
		return nil, errors.New(outputWriterRequiredMessageConstant)
	}

	service := &Service{logger: logger, searcher: searcher, outputWriter: outputWriter}
	return service, nil
}

// List retrieves every skeleton repository for the organization and renders
// one aligned line per repository, names ordered lexicographically.
func (service *Service) List(executionContext context.Context, options ListOptions) error {
	if len(options.SourceOrganization) == 0 {
		return errors.New(organizationRequiredMessageConstant)
	}
	if len(options.DiscoveryTopic) == 0 {
		return errors.New(discoveryTopicRequiredMessageConstant)
	}

	repositories, searchError := service.searcher.SearchSkeletonRepositories(executionContext, options.SourceOrganization, options.DiscoveryTopic)
	if searchError != nil {
		return fmt.Errorf(repositorySearchFailedTemplateConstant, searchError)
	}

	nameColumnWidth := 0
	for _, repository := range repositories {
		if len(repository.Name) > nameColumnWidth {
			nameColumnWidth = len(repository.Name)
		}
	}

	for _, repository := range repositories {
		_, writeError := fmt.Fprintf(service.outputWriter, listingLineTemplateConstant, nameColumnWidth, repository.Name, repository.Description)
		if writeError != nil {
			return fmt.Errorf(listingRenderingFailedTemplateConstant, writeError)
		}
	}

	service.logger.Info(listingLogMessageConstant,
		zap.String(organizationLogFieldConstant, options.SourceOrganization),
		zap.Int(repositoryCountLogFieldConstant, len(repositories)),
	)

	return nil
}
