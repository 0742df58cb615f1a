package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/skeleton/internal/execshell"
)

const (
	cloneSubcommandConstant              = "clone"
	remoteSubcommandConstant             = "remote"
	remoteAddSubcommandConstant          = "add"
	remoteSetURLSubcommandConstant       = "set-url"
	branchSubcommandConstant             = "branch"
	addSubcommandConstant                = "add"
	commitSubcommandConstant             = "commit"
	pushSubcommandConstant               = "push"
	revParseSubcommandConstant           = "rev-parse"
	lsFilesSubcommandConstant            = "ls-files"
	originFlagConstant                   = "--origin"
	pushFlagConstant                     = "--push"
	allFlagConstant                      = "--all"
	messageFlagConstant                  = "-m"
	setUpstreamFlagConstant              = "--set-upstream"
	abbreviatedReferenceFlagConstant     = "--abbrev-ref"
	headReferenceConstant                = "HEAD"
	executorNotConfiguredMessageConstant = "git executor not configured"
	requiredValueMessageConstant         = "value required"
	trackedFileSeparatorConstant         = "\n"
)

// GitCommandExecutor exposes the subset of shell execution used by the manager.
type GitCommandExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

var (
	// ErrExecutorNotConfigured indicates the manager was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// RepositoryManager performs git operations for skeleton workflows.
type RepositoryManager struct {
	executor GitCommandExecutor
}

// NewRepositoryManager constructs a RepositoryManager.
func NewRepositoryManager(executor GitCommandExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CloneRepository clones the remote URL into destinationPath, naming the
// resulting remote after remoteName instead of origin.
func (manager *RepositoryManager) CloneRepository(executionContext context.Context, remoteURL string, remoteName string, destinationPath string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			cloneSubcommandConstant,
			originFlagConstant,
			remoteName,
			remoteURL,
			destinationPath,
		},
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// AddRemote registers a new remote inside the repository.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			remoteSubcommandConstant,
			remoteAddSubcommandConstant,
			remoteName,
			remoteURL,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// SetPushURL overrides the push URL of a remote without touching its fetch URL.
func (manager *RepositoryManager) SetPushURL(executionContext context.Context, repositoryPath string, remoteName string, pushURL string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			remoteSubcommandConstant,
			remoteSetURLSubcommandConstant,
			pushFlagConstant,
			remoteName,
			pushURL,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// CreateBranch creates a local branch at the current branch tip without switching to it.
func (manager *RepositoryManager) CreateBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			branchSubcommandConstant,
			branchName,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// StageAllChanges stages every modification in the working tree.
func (manager *RepositoryManager) StageAllChanges(executionContext context.Context, repositoryPath string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			addSubcommandConstant,
			allFlagConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// CreateCommit records the staged tree with the supplied message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			commitSubcommandConstant,
			messageFlagConstant,
			commitMessage,
		},
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// PushBranchesWithUpstream pushes the branches to the remote and records
// upstream tracking for each.
func (manager *RepositoryManager) PushBranchesWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchNames []string) error {
	commandArguments := []string{
		pushSubcommandConstant,
		setUpstreamFlagConstant,
		remoteName,
	}
	commandArguments = append(commandArguments, branchNames...)

	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: repositoryPath,
	}

	_, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	return executionError
}

// GetCurrentBranch resolves the branch the repository currently has checked out.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			revParseSubcommandConstant,
			abbreviatedReferenceFlagConstant,
			headReferenceConstant,
		},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// ListTrackedFiles returns the paths of every file tracked by the repository,
// relative to the repository root.
func (manager *RepositoryManager) ListTrackedFiles(executionContext context.Context, repositoryPath string) ([]string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{lsFilesSubcommandConstant},
		WorkingDirectory: repositoryPath,
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return nil, executionError
	}

	trackedFiles := []string{}
	for _, filePath := range strings.Split(executionResult.StandardOutput, trackedFileSeparatorConstant) {
		trimmedPath := strings.TrimSpace(filePath)
		if len(trimmedPath) > 0 {
			trackedFiles = append(trackedFiles, trimmedPath)
		}
	}

	return trackedFiles, nil
}
