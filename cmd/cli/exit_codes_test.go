package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/skeleton/cmd/cli"
	"github.com/temirov/skeleton/internal/clone"
	"github.com/temirov/skeleton/internal/execshell"
	"github.com/temirov/skeleton/internal/skeletons"
)

func TestDetermineExitCode(testInstance *testing.T) {
	testCases := []struct {
		name             string
		executionError   error
		expectedExitCode int
	}{
		{
			name:             "success",
			executionError:   nil,
			expectedExitCode: cli.ExitCodeSuccess,
		},
		{
			name:             "remote_creation_failure",
			executionError:   clone.RemoteCreationFailedError{Repository: "cisagov/my-repo", Cause: errors.New("name already taken")},
			expectedExitCode: cli.ExitCodeRecoverableFailure,
		},
		{
			name:             "wrapped_remote_creation_failure",
			executionError:   fmt.Errorf("workflow halted: %w", clone.RemoteCreationFailedError{Repository: "cisagov/my-repo", Cause: errors.New("denied")}),
			expectedExitCode: cli.ExitCodeRecoverableFailure,
		},
		{
			name:             "missing_dependency",
			executionError:   execshell.CommandNotFoundError{Command: execshell.CommandGitHub, Cause: errors.New("not installed")},
			expectedExitCode: cli.ExitCodeFailure,
		},
		{
			name:             "usage_error",
			executionError:   cli.UsageError{Cause: errors.New("unknown flag: --bogus")},
			expectedExitCode: cli.ExitCodeRecoverableFailure,
		},
		{
			name:             "missing_positional_arguments",
			executionError:   clone.ErrMissingRepositoryArguments,
			expectedExitCode: cli.ExitCodeRecoverableFailure,
		},
		{
			name:             "unexpected_positional_arguments",
			executionError:   skeletons.ErrUnexpectedArguments,
			expectedExitCode: cli.ExitCodeRecoverableFailure,
		},
		{
			name:             "unknown_command",
			executionError:   errors.New(`unknown command "bogus" for "skeleton"`),
			expectedExitCode: cli.ExitCodeRecoverableFailure,
		},
		{
			name:             "generic_failure",
			executionError:   errors.New("authentication check failed"),
			expectedExitCode: cli.ExitCodeFailure,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedExitCode, cli.DetermineExitCode(testCase.executionError))
		})
	}
}
