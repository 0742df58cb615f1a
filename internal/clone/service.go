package clone

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/skeleton/internal/githubcli"
	"github.com/temirov/skeleton/internal/gitrepo"
)

const (
	originRemoteNameConstant             = "origin"
	disabledPushSentinelConstant         = "no_push"
	firstCommitsBranchNameConstant       = "first-commits"
	renameCommitMessageConstant          = "Rename repository references after clone"
	lineageCommitMessageConstant         = "Add lineage configuration"
	pullRequestTitleConstant             = "First commits"
	hostingServiceHostConstant           = "github.com"
	rewrittenFilePermissionsConstant     = 0o644
	loggerDependencyMessageConstant      = "logger must not be nil"
	gitHubDependencyMessageConstant      = "github operations must not be nil"
	gitDependencyMessageConstant         = "git operations must not be nil"
	fileSystemDependencyMessageConstant  = "file system must not be nil"
	statusDependencyMessageConstant      = "status reporter must not be nil"
	sourceRepositoryRequiredConstant     = "source repository name must not be empty"
	destinationRepositoryRequiredConst   = "destination repository name must not be empty"
	sourceOrganizationRequiredConstant   = "source organization must not be empty"
	destinationOrganizationRequiredConst = "destination organization must not be empty"
	defaultBranchRequiredConstant        = "default branch name must not be empty"
	authenticationFailedTemplateConstant = "authentication check failed: %w"
	cloneFailedTemplateConstant          = "skeleton clone failed: %w"
	rewriteFailedTemplateConstant        = "repository reference rewrite failed: %w"
	publishFailedTemplateConstant        = "branch publication failed: %w"
	configurationFailedTemplateConstant  = "repository configuration failed: %w"
	cloneCompletedLogMessageConstant     = "clone workflow completed"
	repositoryLogFieldConstant           = "repository"
	reconcileResultLogFieldConstant      = "reconcile_result"
	clonedStatusTemplateConstant         = "Cloned %s into %s"
	creationFailedStatusTemplateConstant = "Unable to create remote repository %s."
	manualRecoveryIntroTemplateConstant  = "Create it manually, then run from %s:"
	manualPushCommandTemplateConstant    = "  git push --set-upstream %s %s %s"
	manualPullRequestCommandConstant     = "  gh pr create --title \"First commits\" --assignee @me --web"
	readyStatusTemplateConstant          = "Repository %s is ready"
)

// GitOperations captures the version-control calls the clone workflow performs.
type GitOperations interface {
	CloneRepository(executionContext context.Context, remoteURL string, remoteName string, destinationPath string) error
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	SetPushURL(executionContext context.Context, repositoryPath string, remoteName string, pushURL string) error
	CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error
	StageAllChanges(executionContext context.Context, repositoryPath string) error
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
	PushBranchesWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchNames []string) error
	ListTrackedFiles(executionContext context.Context, repositoryPath string) ([]string, error)
}

// GitHubOperations captures the hosting-service calls the clone workflow performs.
type GitHubOperations interface {
	CheckAuthentication(executionContext context.Context) error
	RepositoryExists(executionContext context.Context, repository string) (bool, error)
	CreateRepository(executionContext context.Context, repository string) error
	SetDefaultRepository(executionContext context.Context, workingDirectory string, repository string) error
	CreatePullRequest(executionContext context.Context, workingDirectory string, options githubcli.PullRequestOptions) error
	ResolveOwnerType(executionContext context.Context, owner string) (githubcli.OwnerType, error)
	UpdateRepositorySettings(executionContext context.Context, repository string, settings githubcli.RepositorySettings) error
	ApplyBranchProtection(executionContext context.Context, repository string, branch string, payload []byte) error
}

// StatusReporter renders user-facing progress and recovery messages.
type StatusReporter interface {
	Info(format string, arguments ...any)
	Success(format string, arguments ...any)
	Error(format string, arguments ...any)
	Plain(format string, arguments ...any)
}

// Dependencies lists the collaborators required by the clone service.
type Dependencies struct {
	Logger     *zap.Logger
	GitHub     GitHubOperations
	Git        GitOperations
	FileSystem FileSystem
	Status     StatusReporter
}

// Options captures one clone invocation.
type Options struct {
	SourceRepository        string
	DestinationRepository   string
	SourceOrganization      string
	DestinationOrganization string
	WorkingDirectory        string
	DefaultBranch           string
}

// Service executes the full skeleton clone workflow.
type Service struct {
	dependencies Dependencies
}

// NewService validates the collaborators and constructs a clone service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Logger == nil {
		return nil, errors.New(loggerDependencyMessageConstant)
	}
	if dependencies.GitHub == nil {
		return nil, errors.New(gitHubDependencyMessageConstant)
	}
	if dependencies.Git == nil {
		return nil, errors.New(gitDependencyMessageConstant)
	}
	if dependencies.FileSystem == nil {
		return nil, errors.New(fileSystemDependencyMessageConstant)
	}
	if dependencies.Status == nil {
		return nil, errors.New(statusDependencyMessageConstant)
	}

	return &Service{dependencies: dependencies}, nil
}

// Execute runs the clone, rewrite, lineage, reconcile, publish, and configure
// sequence. Every step blocks until its external call completes; no partially
// completed local state is rolled back on failure.
func (service *Service) Execute(executionContext context.Context, options Options) error {
	validationError := validateOptions(options)
	if validationError != nil {
		return validationError
	}

	authenticationError := service.dependencies.GitHub.CheckAuthentication(executionContext)
	if authenticationError != nil {
		return fmt.Errorf(authenticationFailedTemplateConstant, authenticationError)
	}

	sourceCoordinates := RepositoryCoordinates{Organization: options.SourceOrganization, Name: options.SourceRepository}
	destinationCoordinates := RepositoryCoordinates{Organization: options.DestinationOrganization, Name: options.DestinationRepository}
	repositoryPath := filepath.Join(options.WorkingDirectory, options.DestinationRepository)

	prepareError := service.prepareLocalRepository(executionContext, sourceCoordinates, destinationCoordinates, repositoryPath)
	if prepareError != nil {
		return prepareError
	}

	rewriteError := service.rewriteRepositoryReferences(executionContext, repositoryPath, RewritePlan{Source: sourceCoordinates, Destination: destinationCoordinates})
	if rewriteError != nil {
		return fmt.Errorf(rewriteFailedTemplateConstant, rewriteError)
	}

	historyError := service.recordInitialHistory(executionContext, sourceCoordinates, repositoryPath)
	if historyError != nil {
		return historyError
	}

	reconcileResult, publishError := service.reconcileAndPublish(executionContext, destinationCoordinates, repositoryPath, options.DefaultBranch)
	if publishError != nil {
		return publishError
	}

	configurationError := service.configureRepository(executionContext, destinationCoordinates, options.DefaultBranch)
	if configurationError != nil {
		return fmt.Errorf(configurationFailedTemplateConstant, configurationError)
	}

	service.dependencies.Status.Success(readyStatusTemplateConstant, destinationCoordinates.QualifiedName())
	service.dependencies.Logger.Info(cloneCompletedLogMessageConstant,
		zap.String(repositoryLogFieldConstant, destinationCoordinates.QualifiedName()),
		zap.String(reconcileResultLogFieldConstant, string(reconcileResult)),
	)

	return nil
}

func validateOptions(options Options) error {
	if len(options.SourceRepository) == 0 {
		return errors.New(sourceRepositoryRequiredConstant)
	}
	if len(options.DestinationRepository) == 0 {
		return errors.New(destinationRepositoryRequiredConst)
	}
	if len(options.SourceOrganization) == 0 {
		return errors.New(sourceOrganizationRequiredConstant)
	}
	if len(options.DestinationOrganization) == 0 {
		return errors.New(destinationOrganizationRequiredConst)
	}
	if len(options.DefaultBranch) == 0 {
		return errors.New(defaultBranchRequiredConstant)
	}
	return nil
}

func (service *Service) prepareLocalRepository(executionContext context.Context, source RepositoryCoordinates, destination RepositoryCoordinates, repositoryPath string) error {
	sourceRemoteURL, sourceURLError := hostedRemoteURL(source)
	if sourceURLError != nil {
		return fmt.Errorf(cloneFailedTemplateConstant, sourceURLError)
	}

	cloneError := service.dependencies.Git.CloneRepository(executionContext, sourceRemoteURL, source.Name, repositoryPath)
	if cloneError != nil {
		return fmt.Errorf(cloneFailedTemplateConstant, cloneError)
	}
	service.dependencies.Status.Info(clonedStatusTemplateConstant, source.QualifiedName(), repositoryPath)

	destinationRemoteURL, destinationURLError := hostedRemoteURL(destination)
	if destinationURLError != nil {
		return fmt.Errorf(cloneFailedTemplateConstant, destinationURLError)
	}

	addRemoteError := service.dependencies.Git.AddRemote(executionContext, repositoryPath, originRemoteNameConstant, destinationRemoteURL)
	if addRemoteError != nil {
		return fmt.Errorf(cloneFailedTemplateConstant, addRemoteError)
	}

	defaultRepositoryError := service.dependencies.GitHub.SetDefaultRepository(executionContext, repositoryPath, destination.QualifiedName())
	if defaultRepositoryError != nil {
		return fmt.Errorf(cloneFailedTemplateConstant, defaultRepositoryError)
	}

	disablePushError := service.dependencies.Git.SetPushURL(executionContext, repositoryPath, source.Name, disabledPushSentinelConstant)
	if disablePushError != nil {
		return fmt.Errorf(cloneFailedTemplateConstant, disablePushError)
	}

	return nil
}

func (service *Service) rewriteRepositoryReferences(executionContext context.Context, repositoryPath string, plan RewritePlan) error {
	trackedFiles, listError := service.dependencies.Git.ListTrackedFiles(executionContext, repositoryPath)
	if listError != nil {
		return listError
	}

	for _, trackedFile := range trackedFiles {
		if IsRewriteProtectedPath(trackedFile) {
			continue
		}

		absoluteFilePath := filepath.Join(repositoryPath, trackedFile)
		originalContents, readError := service.dependencies.FileSystem.ReadFile(absoluteFilePath)
		if readError != nil {
			return readError
		}

		rewrittenContents := RewriteContent(string(originalContents), plan)
		if rewrittenContents == string(originalContents) {
			continue
		}

		writeError := service.dependencies.FileSystem.WriteFile(absoluteFilePath, []byte(rewrittenContents), rewrittenFilePermissionsConstant)
		if writeError != nil {
			return writeError
		}
	}

	return nil
}

func (service *Service) recordInitialHistory(executionContext context.Context, source RepositoryCoordinates, repositoryPath string) error {
	renameCommitError := service.stageAndCommit(executionContext, repositoryPath, renameCommitMessageConstant)
	if renameCommitError != nil {
		return renameCommitError
	}

	lineageError := WriteLineageRecord(service.dependencies.FileSystem, repositoryPath, BuildLineageRecord(source))
	if lineageError != nil {
		return lineageError
	}

	lineageCommitError := service.stageAndCommit(executionContext, repositoryPath, lineageCommitMessageConstant)
	if lineageCommitError != nil {
		return lineageCommitError
	}

	return service.dependencies.Git.CreateBranch(executionContext, repositoryPath, firstCommitsBranchNameConstant)
}

func (service *Service) stageAndCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	stageError := service.dependencies.Git.StageAllChanges(executionContext, repositoryPath)
	if stageError != nil {
		return stageError
	}

	return service.dependencies.Git.CreateCommit(executionContext, repositoryPath, commitMessage)
}

func (service *Service) reconcileAndPublish(executionContext context.Context, destination RepositoryCoordinates, repositoryPath string, defaultBranch string) (ReconcileResult, error) {
	reconciler, reconcilerError := NewRemoteReconciler(service.dependencies.GitHub)
	if reconcilerError != nil {
		return ReconcileResultFailed, reconcilerError
	}

	reconcileResult, reconcileError := reconciler.Reconcile(executionContext, destination.QualifiedName())
	if reconcileError != nil {
		creationFailure := RemoteCreationFailedError{}
		if errors.As(reconcileError, &creationFailure) {
			service.printManualRecoveryInstructions(destination, repositoryPath, defaultBranch)
		}
		return reconcileResult, reconcileError
	}

	pushError := service.dependencies.Git.PushBranchesWithUpstream(executionContext, repositoryPath, originRemoteNameConstant, []string{defaultBranch, firstCommitsBranchNameConstant})
	if pushError != nil {
		return reconcileResult, fmt.Errorf(publishFailedTemplateConstant, pushError)
	}

	pullRequestOptions := githubcli.PullRequestOptions{
		Title:             pullRequestTitleConstant,
		BaseBranch:        defaultBranch,
		HeadBranch:        firstCommitsBranchNameConstant,
		AssignCurrentUser: true,
		OpenInBrowser:     true,
	}
	pullRequestError := service.dependencies.GitHub.CreatePullRequest(executionContext, repositoryPath, pullRequestOptions)
	if pullRequestError != nil {
		return reconcileResult, fmt.Errorf(publishFailedTemplateConstant, pullRequestError)
	}

	return reconcileResult, nil
}

func (service *Service) configureRepository(executionContext context.Context, destination RepositoryCoordinates, defaultBranch string) error {
	settingsError := service.dependencies.GitHub.UpdateRepositorySettings(executionContext, destination.QualifiedName(), DefaultRepositorySettings())
	if settingsError != nil {
		return settingsError
	}

	ownerType, ownerTypeError := service.dependencies.GitHub.ResolveOwnerType(executionContext, destination.Organization)
	if ownerTypeError != nil {
		return ownerTypeError
	}

	protectionPayload, encodingError := EncodeBranchProtectionPolicy(BuildBranchProtectionPolicy(ownerType))
	if encodingError != nil {
		return encodingError
	}

	return service.dependencies.GitHub.ApplyBranchProtection(executionContext, destination.QualifiedName(), defaultBranch, protectionPayload)
}

func (service *Service) printManualRecoveryInstructions(destination RepositoryCoordinates, repositoryPath string, defaultBranch string) {
	service.dependencies.Status.Error(creationFailedStatusTemplateConstant, destination.QualifiedName())
	service.dependencies.Status.Plain(manualRecoveryIntroTemplateConstant, repositoryPath)
	service.dependencies.Status.Plain(manualPushCommandTemplateConstant, originRemoteNameConstant, defaultBranch, firstCommitsBranchNameConstant)
	service.dependencies.Status.Plain(manualPullRequestCommandConstant)
}

func hostedRemoteURL(coordinates RepositoryCoordinates) (string, error) {
	return gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolHTTPS,
		Host:       hostingServiceHostConstant,
		Owner:      coordinates.Organization,
		Repository: coordinates.Name,
	})
}
