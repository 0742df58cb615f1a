package clone

import (
	"context"
	"errors"
	"fmt"
)

const (
	reconcilerOperationsRequiredMessageConstant = "reconciler operations must not be nil"
	existenceProbeFailedTemplateConstant        = "destination repository existence probe failed: %w"
	remoteCreationFailedTemplateConstant        = "remote repository creation failed for %s: %v"
)

// ReconcileResult identifies the terminal outcome of remote reconciliation.
type ReconcileResult string

const (
	// ReconcileResultExists marks a destination remote that was already present.
	ReconcileResultExists ReconcileResult = "exists"
	// ReconcileResultCreated marks a destination remote created by this run.
	ReconcileResultCreated ReconcileResult = "created"
	// ReconcileResultFailed marks a creation attempt that did not succeed.
	ReconcileResultFailed ReconcileResult = "failed"
)

// RemoteCreationFailedError reports that the destination remote could not be
// created. The local repository remains valid and requires manual follow-up.
type RemoteCreationFailedError struct {
	Repository string
	Cause      error
}

// Error describes the failed creation attempt.
func (creationError RemoteCreationFailedError) Error() string {
	return fmt.Sprintf(remoteCreationFailedTemplateConstant, creationError.Repository, creationError.Cause)
}

// Unwrap exposes the underlying creation failure.
func (creationError RemoteCreationFailedError) Unwrap() error {
	return creationError.Cause
}

// ReconcilerOperations captures the hosting-service calls reconciliation requires.
type ReconcilerOperations interface {
	RepositoryExists(executionContext context.Context, repository string) (bool, error)
	CreateRepository(executionContext context.Context, repository string) error
}

// RemoteReconciler ensures the destination remote repository exists.
type RemoteReconciler struct {
	operations ReconcilerOperations
}

// NewRemoteReconciler validates the collaborators and constructs a reconciler.
func NewRemoteReconciler(operations ReconcilerOperations) (*RemoteReconciler, error) {
	if operations == nil {
		return nil, errors.New(reconcilerOperationsRequiredMessageConstant)
	}

	return &RemoteReconciler{operations: operations}, nil
}

// Reconcile probes for the destination remote and creates it when absent.
// An existing remote is never re-created. A failed creation attempt returns
// ReconcileResultFailed together with a RemoteCreationFailedError.
func (reconciler *RemoteReconciler) Reconcile(executionContext context.Context, repository string) (ReconcileResult, error) {
	repositoryPresent, probeError := reconciler.operations.RepositoryExists(executionContext, repository)
	if probeError != nil {
		return ReconcileResultFailed, fmt.Errorf(existenceProbeFailedTemplateConstant, probeError)
	}
	if repositoryPresent {
		return ReconcileResultExists, nil
	}

	creationError := reconciler.operations.CreateRepository(executionContext, repository)
	if creationError != nil {
		return ReconcileResultFailed, RemoteCreationFailedError{Repository: repository, Cause: creationError}
	}

	return ReconcileResultCreated, nil
}
