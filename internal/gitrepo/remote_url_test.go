package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/skeleton/internal/gitrepo"
)

const (
	testHTTPSRemoteConstant = "https://github.com/cisagov/skeleton-generic.git"
	testSSHRemoteConstant   = "git@github.com:cisagov/skeleton-generic.git"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name             string
		remote           string
		expectError      bool
		expectedProtocol gitrepo.RemoteProtocol
		expectedOwner    string
		expectedName     string
	}{
		{
			name:             "https_remote",
			remote:           testHTTPSRemoteConstant,
			expectedProtocol: gitrepo.RemoteProtocolHTTPS,
			expectedOwner:    "cisagov",
			expectedName:     "skeleton-generic",
		},
		{
			name:             "ssh_remote",
			remote:           testSSHRemoteConstant,
			expectedProtocol: gitrepo.RemoteProtocolSSH,
			expectedOwner:    "cisagov",
			expectedName:     "skeleton-generic",
		},
		{
			name:        "unsupported_remote",
			remote:      "ftp://example.com/repo.git",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.remote)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}

			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedProtocol, parsedRemote.Protocol)
			require.Equal(testInstance, testCase.expectedOwner, parsedRemote.Owner)
			require.Equal(testInstance, testCase.expectedName, parsedRemote.Repository)
		})
	}
}

func TestFormatRemoteURLRoundTrip(testInstance *testing.T) {
	formattedRemote, formatError := gitrepo.FormatRemoteURL(gitrepo.RemoteURL{
		Protocol:   gitrepo.RemoteProtocolHTTPS,
		Host:       "github.com",
		Owner:      "cisagov",
		Repository: "skeleton-generic",
	})
	require.NoError(testInstance, formatError)
	require.Equal(testInstance, testHTTPSRemoteConstant, formattedRemote)
}
