package tests

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationBuildTimeout   = 120 * time.Second
	integrationCommandTimeout = 30 * time.Second
	integrationBinaryName     = "skeleton"
)

func repositoryRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(currentWorkingDirectory)
}

func buildSkeletonBinary(testInstance *testing.T) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryName)

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationBuildTimeout)
	defer cancelFunction()

	buildCommand := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = repositoryRootDirectory(testInstance)
	buildCommand.Env = os.Environ()

	outputBytes, buildError := buildCommand.CombinedOutput()
	require.NoError(testInstance, buildError, string(outputBytes))

	return binaryPath
}

func runSkeletonBinary(testInstance *testing.T, binaryPath string, environment []string, arguments []string) (string, int) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = testInstance.TempDir()
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	if runError == nil {
		return string(outputBytes), 0
	}

	exitError := &exec.ExitError{}
	require.True(testInstance, errors.As(runError, &exitError), string(outputBytes))
	return string(outputBytes), exitError.ExitCode()
}
