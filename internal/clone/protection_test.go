package clone_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/skeleton/internal/clone"
	"github.com/temirov/skeleton/internal/githubcli"
)

func TestDefaultRepositorySettings(testInstance *testing.T) {
	settings := clone.DefaultRepositorySettings()

	require.False(testInstance, settings.AllowAutoMerge)
	require.True(testInstance, settings.AllowMergeCommit)
	require.True(testInstance, settings.AllowRebaseMerge)
	require.False(testInstance, settings.AllowSquashMerge)
	require.True(testInstance, settings.DeleteBranchOnMerge)
	require.False(testInstance, settings.Private)
}

func TestBuildBranchProtectionPolicyVariants(testInstance *testing.T) {
	testCases := []struct {
		name               string
		ownerType          githubcli.OwnerType
		expectRestrictions bool
	}{
		{name: "organization_declares_empty_restriction_lists", ownerType: githubcli.OwnerTypeOrganization, expectRestrictions: true},
		{name: "personal_account_omits_restrictions", ownerType: githubcli.OwnerTypeUser, expectRestrictions: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			policy := clone.BuildBranchProtectionPolicy(testCase.ownerType)

			require.True(subtest, policy.EnforceAdmins)
			require.True(subtest, policy.RequiredConversationResolution)
			require.True(subtest, policy.RequiredPullRequestReviews.RequireCodeOwnerReviews)
			require.Equal(subtest, 2, policy.RequiredPullRequestReviews.RequiredApprovingReviewCount)
			require.True(subtest, policy.RequiredStatusChecks.Strict)
			require.Equal(subtest, []string{"lint"}, policy.RequiredStatusChecks.Contexts)

			if testCase.expectRestrictions {
				require.NotNil(subtest, policy.Restrictions)
				require.Empty(subtest, policy.Restrictions.Apps)
				require.Empty(subtest, policy.Restrictions.Teams)
				require.Empty(subtest, policy.Restrictions.Users)
				require.NotNil(subtest, policy.RequiredPullRequestReviews.DismissalRestrictions)
				require.Empty(subtest, policy.RequiredPullRequestReviews.DismissalRestrictions.Users)
				require.Empty(subtest, policy.RequiredPullRequestReviews.DismissalRestrictions.Teams)
			} else {
				require.Nil(subtest, policy.Restrictions)
				require.Nil(subtest, policy.RequiredPullRequestReviews.DismissalRestrictions)
			}
		})
	}
}

func TestEncodeBranchProtectionPolicyFieldPresence(testInstance *testing.T) {
	organizationPayload, organizationError := clone.EncodeBranchProtectionPolicy(clone.BuildBranchProtectionPolicy(githubcli.OwnerTypeOrganization))
	require.NoError(testInstance, organizationError)

	organizationFields := map[string]any{}
	require.NoError(testInstance, json.Unmarshal(organizationPayload, &organizationFields))
	require.Contains(testInstance, organizationFields, "restrictions")
	reviewFields, reviewFieldsPresent := organizationFields["required_pull_request_reviews"].(map[string]any)
	require.True(testInstance, reviewFieldsPresent)
	require.Contains(testInstance, reviewFields, "dismissal_restrictions")

	personalPayload, personalError := clone.EncodeBranchProtectionPolicy(clone.BuildBranchProtectionPolicy(githubcli.OwnerTypeUser))
	require.NoError(testInstance, personalError)

	personalFields := map[string]any{}
	require.NoError(testInstance, json.Unmarshal(personalPayload, &personalFields))
	require.NotContains(testInstance, personalFields, "restrictions")
	personalReviewFields, personalReviewFieldsPresent := personalFields["required_pull_request_reviews"].(map[string]any)
	require.True(testInstance, personalReviewFieldsPresent)
	require.NotContains(testInstance, personalReviewFields, "dismissal_restrictions")
}
