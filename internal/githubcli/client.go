package githubcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/temirov/skeleton/internal/execshell"
)

const (
	authSubcommandConstant                   = "auth"
	statusSubcommandConstant                 = "status"
	repoSubcommandConstant                   = "repo"
	viewSubcommandConstant                   = "view"
	createSubcommandConstant                 = "create"
	setDefaultSubcommandConstant             = "set-default"
	pullRequestSubcommandConstant            = "pr"
	apiSubcommandConstant                    = "api"
	graphQLEndpointConstant                  = "graphql"
	jsonFlagConstant                         = "--json"
	publicFlagConstant                       = "--public"
	paginateFlagConstant                     = "--paginate"
	rawFieldFlagConstant                     = "-f"
	typedFieldFlagConstant                   = "-F"
	titleFlagConstant                        = "--title"
	baseFlagConstant                         = "--base"
	headFlagConstant                         = "--head"
	assigneeFlagConstant                     = "--assignee"
	webFlagConstant                          = "--web"
	methodFlagConstant                       = "-X"
	inputFlagConstant                        = "--input"
	stdinReferenceConstant                   = "-"
	acceptHeaderFlagConstant                 = "-H"
	acceptHeaderValueConstant                = "Accept: application/vnd.github+json"
	httpMethodPatchConstant                  = "PATCH"
	httpMethodPutConstant                    = "PUT"
	currentUserAssigneeConstant              = "@me"
	repoViewNameFieldConstant                = "name"
	userEndpointConstant                     = "user"
	ownerEndpointTemplateConstant            = "users/%s"
	repositoryEndpointTemplateConstant       = "repos/%s"
	protectionEndpointTemplateConstant       = "repos/%s/branches/%s/protection"
	graphQLQueryFieldTemplateConstant        = "query=%s"
	graphQLSearchFieldTemplateConstant       = "searchQuery=%s"
	searchQueryTemplateConstant              = "org:%s topic:%s archived:false"
	organizationOwnerTypeValueConstant       = "Organization"
	repositoryFieldNameConstant              = "repository"
	organizationFieldNameConstant            = "organization"
	ownerFieldNameConstant                   = "owner"
	branchFieldNameConstant                  = "branch"
	topicFieldNameConstant                   = "topic"
	titleFieldNameConstant                   = "title"
	payloadFieldNameConstant                 = "payload"
	requiredValueMessageConstant             = "value required"
	executorNotConfiguredMessageConstant     = "github cli executor not configured"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant    = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant     = "%s payload encoding failed: %s"
	invalidInputErrorTemplateConstant        = "%s: %s"
	checkAuthenticationOperationNameConstant = OperationName("CheckAuthentication")
	resolveCurrentUserOperationNameConstant  = OperationName("ResolveCurrentUser")
	searchRepositoriesOperationNameConstant  = OperationName("SearchRepositories")
	repositoryExistsOperationNameConstant    = OperationName("RepositoryExists")
	createRepositoryOperationNameConstant    = OperationName("CreateRepository")
	setDefaultOperationNameConstant          = OperationName("SetDefaultRepository")
	createPullRequestOperationNameConstant   = OperationName("CreatePullRequest")
	resolveOwnerTypeOperationNameConstant    = OperationName("ResolveOwnerType")
	updateSettingsOperationNameConstant      = OperationName("UpdateRepositorySettings")
	applyProtectionOperationNameConstant     = OperationName("ApplyBranchProtection")
)

// repositorySearchQueryConstant pages through every repository matched by the
// search; gh substitutes $endCursor on each --paginate request.
const repositorySearchQueryConstant = `query($searchQuery: String!, $endCursor: String) {
  search(query: $searchQuery, type: REPOSITORY, first: 100, after: $endCursor) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      ... on Repository {
        name
        description
      }
    }
  }
}`

// OperationName describes a named GitHub CLI workflow supported by the client.
type OperationName string

// OwnerType distinguishes organization accounts from personal accounts.
type OwnerType string

// Supported owner account types.
const (
	OwnerTypeOrganization OwnerType = OwnerType("organization")
	OwnerTypeUser         OwnerType = OwnerType("user")
)

// SkeletonRepository describes one repository returned by the discovery search.
type SkeletonRepository struct {
	Name        string
	Description string
}

// RepositorySettings captures the repository-level merge policy applied after creation.
type RepositorySettings struct {
	AllowAutoMerge      bool `json:"allow_auto_merge"`
	AllowMergeCommit    bool `json:"allow_merge_commit"`
	AllowRebaseMerge    bool `json:"allow_rebase_merge"`
	AllowSquashMerge    bool `json:"allow_squash_merge"`
	DeleteBranchOnMerge bool `json:"delete_branch_on_merge"`
	Private             bool `json:"private"`
}

// PullRequestOptions configures CreatePullRequest invocations.
type PullRequestOptions struct {
	Title             string
	BaseBranch        string
	HeadBranch        string
	AssignCurrentUser bool
	OpenInBrowser     bool
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client coordinates GitHub CLI invocations through execshell.
type Client struct {
	executor GitHubCommandExecutor
}

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// OperationError wraps execution issues for GitHub CLI operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// NewClient constructs a GitHub CLI client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// CheckAuthentication verifies the GitHub CLI holds valid credentials.
func (client *Client) CheckAuthentication(executionContext context.Context) error {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{authSubcommandConstant, statusSubcommandConstant},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: checkAuthenticationOperationNameConstant, Cause: executionError}
	}

	return nil
}

// ResolveCurrentUser returns the login of the authenticated user.
func (client *Client) ResolveCurrentUser(executionContext context.Context) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{apiSubcommandConstant, userEndpointConstant},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: resolveCurrentUserOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Login string `json:"login"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return "", ResponseDecodingError{Operation: resolveCurrentUserOperationNameConstant, Cause: decodingError}
	}

	return response.Login, nil
}

// SearchSkeletonRepositories enumerates every non-archived repository in the
// organization carrying the discovery topic, sorted lexicographically by name.
func (client *Client) SearchSkeletonRepositories(executionContext context.Context, organization string, topic string) ([]SkeletonRepository, error) {
	organizationName := strings.TrimSpace(organization)
	if len(organizationName) == 0 {
		return nil, InvalidInputError{FieldName: organizationFieldNameConstant, Message: requiredValueMessageConstant}
	}

	topicName := strings.TrimSpace(topic)
	if len(topicName) == 0 {
		return nil, InvalidInputError{FieldName: topicFieldNameConstant, Message: requiredValueMessageConstant}
	}

	searchQuery := fmt.Sprintf(searchQueryTemplateConstant, organizationName, topicName)

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			graphQLEndpointConstant,
			paginateFlagConstant,
			typedFieldFlagConstant,
			fmt.Sprintf(graphQLSearchFieldTemplateConstant, searchQuery),
			rawFieldFlagConstant,
			fmt.Sprintf(graphQLQueryFieldTemplateConstant, repositorySearchQueryConstant),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return nil, OperationError{Operation: searchRepositoriesOperationNameConstant, Cause: executionError}
	}

	repositories, decodingError := decodePaginatedSearchResponses(executionResult.StandardOutput)
	if decodingError != nil {
		return nil, ResponseDecodingError{Operation: searchRepositoriesOperationNameConstant, Cause: decodingError}
	}

	sort.Slice(repositories, func(firstIndex int, secondIndex int) bool {
		return repositories[firstIndex].Name < repositories[secondIndex].Name
	})

	return repositories, nil
}

// RepositoryExists probes whether the repository is visible on the hosting service.
//
// A non-zero exit from the probe is interpreted as "does not exist" rather
// than an error; only execution failures propagate.
func (client *Client) RepositoryExists(executionContext context.Context, repository string) (bool, error) {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return false, InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			viewSubcommandConstant,
			repositoryIdentifier,
			jsonFlagConstant,
			repoViewNameFieldConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, OperationError{Operation: repositoryExistsOperationNameConstant, Cause: executionError}
	}

	return true, nil
}

// CreateRepository creates the repository as a public repository.
func (client *Client) CreateRepository(executionContext context.Context, repository string) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			createSubcommandConstant,
			repositoryIdentifier,
			publicFlagConstant,
		},
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: createRepositoryOperationNameConstant, Cause: executionError}
	}

	return nil
}

// SetDefaultRepository marks the repository as the default target for gh
// pull-request and issue operations inside the working directory.
func (client *Client) SetDefaultRepository(executionContext context.Context, workingDirectory string, repository string) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			repoSubcommandConstant,
			setDefaultSubcommandConstant,
			repositoryIdentifier,
		},
		WorkingDirectory: workingDirectory,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: setDefaultOperationNameConstant, Cause: executionError}
	}

	return nil
}

// CreatePullRequest opens a review request from the working directory.
func (client *Client) CreatePullRequest(executionContext context.Context, workingDirectory string, options PullRequestOptions) error {
	if len(strings.TrimSpace(options.Title)) == 0 {
		return InvalidInputError{FieldName: titleFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandArguments := []string{
		pullRequestSubcommandConstant,
		createSubcommandConstant,
		titleFlagConstant,
		options.Title,
	}

	if len(strings.TrimSpace(options.BaseBranch)) > 0 {
		commandArguments = append(commandArguments, baseFlagConstant, options.BaseBranch)
	}
	if len(strings.TrimSpace(options.HeadBranch)) > 0 {
		commandArguments = append(commandArguments, headFlagConstant, options.HeadBranch)
	}
	if options.AssignCurrentUser {
		commandArguments = append(commandArguments, assigneeFlagConstant, currentUserAssigneeConstant)
	}
	if options.OpenInBrowser {
		commandArguments = append(commandArguments, webFlagConstant)
	}

	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: workingDirectory,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: createPullRequestOperationNameConstant, Cause: executionError}
	}

	return nil
}

// ResolveOwnerType determines whether the owner is an organization or a personal account.
func (client *Client) ResolveOwnerType(executionContext context.Context, owner string) (OwnerType, error) {
	ownerName := strings.TrimSpace(owner)
	if len(ownerName) == 0 {
		return "", InvalidInputError{FieldName: ownerFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(ownerEndpointTemplateConstant, ownerName),
		},
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return "", OperationError{Operation: resolveOwnerTypeOperationNameConstant, Cause: executionError}
	}

	var response struct {
		Type string `json:"type"`
	}

	decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response)
	if decodingError != nil {
		return "", ResponseDecodingError{Operation: resolveOwnerTypeOperationNameConstant, Cause: decodingError}
	}

	if response.Type == organizationOwnerTypeValueConstant {
		return OwnerTypeOrganization, nil
	}

	return OwnerTypeUser, nil
}

// UpdateRepositorySettings applies the repository-level merge policy.
func (client *Client) UpdateRepositorySettings(executionContext context.Context, repository string, settings RepositorySettings) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	payloadBytes, encodingError := json.Marshal(settings)
	if encodingError != nil {
		return PayloadEncodingError{Operation: updateSettingsOperationNameConstant, Cause: encodingError}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(repositoryEndpointTemplateConstant, repositoryIdentifier),
			methodFlagConstant,
			httpMethodPatchConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payloadBytes,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: updateSettingsOperationNameConstant, Cause: executionError}
	}

	return nil
}

// ApplyBranchProtection installs the supplied protection payload on the branch.
func (client *Client) ApplyBranchProtection(executionContext context.Context, repository string, branch string, payload []byte) error {
	repositoryIdentifier := strings.TrimSpace(repository)
	if len(repositoryIdentifier) == 0 {
		return InvalidInputError{FieldName: repositoryFieldNameConstant, Message: requiredValueMessageConstant}
	}

	branchName := strings.TrimSpace(branch)
	if len(branchName) == 0 {
		return InvalidInputError{FieldName: branchFieldNameConstant, Message: requiredValueMessageConstant}
	}

	if len(payload) == 0 {
		return InvalidInputError{FieldName: payloadFieldNameConstant, Message: requiredValueMessageConstant}
	}

	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			apiSubcommandConstant,
			fmt.Sprintf(protectionEndpointTemplateConstant, repositoryIdentifier, branchName),
			methodFlagConstant,
			httpMethodPutConstant,
			inputFlagConstant,
			stdinReferenceConstant,
			acceptHeaderFlagConstant,
			acceptHeaderValueConstant,
		},
		StandardInput: payload,
	}

	_, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return OperationError{Operation: applyProtectionOperationNameConstant, Cause: executionError}
	}

	return nil
}

// decodePaginatedSearchResponses consumes the concatenated JSON documents that
// gh api --paginate emits, one document per result page.
func decodePaginatedSearchResponses(standardOutput string) ([]SkeletonRepository, error) {
	type searchResponse struct {
		Data struct {
			Search struct {
				Nodes []struct {
					Name        string `json:"name"`
					Description string `json:"description"`
				} `json:"nodes"`
			} `json:"search"`
		} `json:"data"`
	}

	repositories := []SkeletonRepository{}
	responseDecoder := json.NewDecoder(strings.NewReader(standardOutput))
	for {
		var response searchResponse
		decodingError := responseDecoder.Decode(&response)
		if decodingError == io.EOF {
			break
		}
		if decodingError != nil {
			return nil, decodingError
		}

		for _, repositoryNode := range response.Data.Search.Nodes {
			repositories = append(repositories, SkeletonRepository{
				Name:        repositoryNode.Name,
				Description: repositoryNode.Description,
			})
		}
	}

	return repositories, nil
}
