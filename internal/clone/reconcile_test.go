package clone_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/skeleton/internal/clone"
)

const reconcileRepositoryConstant = "cisagov/my-repo"

type stubReconcilerOperations struct {
	repositoryPresent bool
	probeError        error
	creationError     error
	createCalled      bool
}

func (operations *stubReconcilerOperations) RepositoryExists(_ context.Context, _ string) (bool, error) {
	return operations.repositoryPresent, operations.probeError
}

func (operations *stubReconcilerOperations) CreateRepository(_ context.Context, _ string) error {
	operations.createCalled = true
	return operations.creationError
}

func TestNewRemoteReconcilerRequiresOperations(testInstance *testing.T) {
	reconciler, creationError := clone.NewRemoteReconciler(nil)
	require.Error(testInstance, creationError)
	require.Nil(testInstance, reconciler)
}

func TestRemoteReconcilerOutcomes(testInstance *testing.T) {
	testCases := []struct {
		name                string
		operations          *stubReconcilerOperations
		expectedResult      clone.ReconcileResult
		expectError         bool
		expectCreationError bool
		expectCreateAttempt bool
	}{
		{
			name:                "existing_repository_skips_creation",
			operations:          &stubReconcilerOperations{repositoryPresent: true},
			expectedResult:      clone.ReconcileResultExists,
			expectCreateAttempt: false,
		},
		{
			name:                "absent_repository_is_created",
			operations:          &stubReconcilerOperations{repositoryPresent: false},
			expectedResult:      clone.ReconcileResultCreated,
			expectCreateAttempt: true,
		},
		{
			name:                "failed_creation_reports_recoverable_error",
			operations:          &stubReconcilerOperations{repositoryPresent: false, creationError: errors.New("permission denied")},
			expectedResult:      clone.ReconcileResultFailed,
			expectError:         true,
			expectCreationError: true,
			expectCreateAttempt: true,
		},
		{
			name:                "probe_failure_is_not_a_creation_failure",
			operations:          &stubReconcilerOperations{probeError: errors.New("network unreachable")},
			expectedResult:      clone.ReconcileResultFailed,
			expectError:         true,
			expectCreationError: false,
			expectCreateAttempt: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			reconciler, creationError := clone.NewRemoteReconciler(testCase.operations)
			require.NoError(subtest, creationError)

			reconcileResult, reconcileError := reconciler.Reconcile(context.Background(), reconcileRepositoryConstant)
			require.Equal(subtest, testCase.expectedResult, reconcileResult)
			require.Equal(subtest, testCase.expectCreateAttempt, testCase.operations.createCalled)

			if !testCase.expectError {
				require.NoError(subtest, reconcileError)
				return
			}

			require.Error(subtest, reconcileError)
			creationFailure := clone.RemoteCreationFailedError{}
			require.Equal(subtest, testCase.expectCreationError, errors.As(reconcileError, &creationFailure))
			if testCase.expectCreationError {
				require.Equal(subtest, reconcileRepositoryConstant, creationFailure.Repository)
			}
		})
	}
}
