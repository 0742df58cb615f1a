package clone

import (
	"encoding/json"
	"fmt"

	"github.com/temirov/skeleton/internal/githubcli"
)

const (
	requiredApprovingReviewCountConstant  = 2
	requiredStatusCheckContextConstant    = "lint"
	protectionEncodingFailedTemplateConst = "branch protection policy encoding failed: %w"
)

// BranchProtectionPolicy is the declarative protection applied to the default branch.
type BranchProtectionPolicy struct {
	EnforceAdmins                  bool                       `json:"enforce_admins"`
	RequiredConversationResolution bool                       `json:"required_conversation_resolution"`
	RequiredPullRequestReviews     RequiredPullRequestReviews `json:"required_pull_request_reviews"`
	RequiredStatusChecks           RequiredStatusChecks       `json:"required_status_checks"`
	Restrictions                   *PushRestrictions          `json:"restrictions,omitempty"`
}

// RequiredPullRequestReviews declares the review requirements for merges.
type RequiredPullRequestReviews struct {
	DismissalRestrictions        *DismissalRestrictions `json:"dismissal_restrictions,omitempty"`
	RequireCodeOwnerReviews      bool                   `json:"require_code_owner_reviews"`
	RequiredApprovingReviewCount int                    `json:"required_approving_review_count"`
}

// DismissalRestrictions lists who may dismiss reviews. Empty lists mean nobody.
type DismissalRestrictions struct {
	Users []string `json:"users"`
	Teams []string `json:"teams"`
}

// PushRestrictions lists who may push to the protected branch. Empty lists mean nobody.
type PushRestrictions struct {
	Apps  []string `json:"apps"`
	Teams []string `json:"teams"`
	Users []string `json:"users"`
}

// RequiredStatusChecks declares the status checks that must pass before merging.
type RequiredStatusChecks struct {
	Strict   bool     `json:"strict"`
	Contexts []string `json:"contexts"`
}

// DefaultRepositorySettings returns the repository-level merge policy applied
// to every destination repository.
func DefaultRepositorySettings() githubcli.RepositorySettings {
	return githubcli.RepositorySettings{
		AllowAutoMerge:      false,
		AllowMergeCommit:    true,
		AllowRebaseMerge:    true,
		AllowSquashMerge:    false,
		DeleteBranchOnMerge: true,
		Private:             false,
	}
}

// BuildBranchProtectionPolicy constructs the protection variant matching the
// destination account type. Organization accounts declare explicit empty
// dismissal and push restriction lists; personal accounts omit both because
// the hosting API rejects restriction fields for them.
func BuildBranchProtectionPolicy(ownerType githubcli.OwnerType) BranchProtectionPolicy {
	policy := BranchProtectionPolicy{
		EnforceAdmins:                  true,
		RequiredConversationResolution: true,
		RequiredPullRequestReviews: RequiredPullRequestReviews{
			RequireCodeOwnerReviews:      true,
			RequiredApprovingReviewCount: requiredApprovingReviewCountConstant,
		},
		RequiredStatusChecks: RequiredStatusChecks{
			Strict:   true,
			Contexts: []string{requiredStatusCheckContextConstant},
		},
	}

	if ownerType == githubcli.OwnerTypeOrganization {
		policy.RequiredPullRequestReviews.DismissalRestrictions = &DismissalRestrictions{Users: []string{}, Teams: []string{}}
		policy.Restrictions = &PushRestrictions{Apps: []string{}, Teams: []string{}, Users: []string{}}
	}

	return policy
}

// EncodeBranchProtectionPolicy serializes the policy for the protection endpoint.
func EncodeBranchProtectionPolicy(policy BranchProtectionPolicy) ([]byte, error) {
	encodedPolicy, encodingError := json.Marshal(policy)
	if encodingError != nil {
		return nil, fmt.Errorf(protectionEncodingFailedTemplateConst, encodingError)
	}

	return encodedPolicy, nil
}
