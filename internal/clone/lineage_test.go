package clone_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/skeleton/internal/clone"
)

type memoryFileSystem struct {
	files       map[string]string
	directories []string
}

func newMemoryFileSystem() *memoryFileSystem {
	return &memoryFileSystem{files: map[string]string{}}
}

func (fileSystem *memoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	contents, filePresent := fileSystem.files[filePath]
	if !filePresent {
		return nil, os.ErrNotExist
	}
	return []byte(contents), nil
}

func (fileSystem *memoryFileSystem) WriteFile(filePath string, contents []byte, _ fs.FileMode) error {
	fileSystem.files[filePath] = string(contents)
	return nil
}

func (fileSystem *memoryFileSystem) MkdirAll(directoryPath string, _ fs.FileMode) error {
	fileSystem.directories = append(fileSystem.directories, directoryPath)
	return nil
}

func TestBuildLineageRecord(testInstance *testing.T) {
	testCases := []struct {
		name              string
		source            clone.RepositoryCoordinates
		expectedRemoteURL string
	}{
		{
			name:              "default_organization",
			source:            clone.RepositoryCoordinates{Organization: "cisagov", Name: "skeleton-generic"},
			expectedRemoteURL: "https://cisagov/skeleton-generic.git",
		},
		{
			name:              "custom_organization",
			source:            clone.RepositoryCoordinates{Organization: "hhs", Name: "skeleton-python"},
			expectedRemoteURL: "https://hhs/skeleton-python.git",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			record := clone.BuildLineageRecord(testCase.source)
			require.Equal(subtest, testCase.expectedRemoteURL, record.Lineage.Skeleton.RemoteURL)
			require.Equal(subtest, "1", record.Version)
		})
	}
}

func TestWriteLineageRecord(testInstance *testing.T) {
	fileSystem := newMemoryFileSystem()
	source := clone.RepositoryCoordinates{Organization: "cisagov", Name: "skeleton-generic"}

	writeError := clone.WriteLineageRecord(fileSystem, "my-repo", clone.BuildLineageRecord(source))
	require.NoError(testInstance, writeError)

	require.Contains(testInstance, fileSystem.directories, filepath.Join("my-repo", ".github"))

	lineageFilePath := filepath.Join("my-repo", ".github", "lineage.yml")
	lineageContents, lineageFilePresent := fileSystem.files[lineageFilePath]
	require.True(testInstance, lineageFilePresent)

	decodedRecord := clone.LineageRecord{}
	decodeError := yaml.Unmarshal([]byte(lineageContents), &decodedRecord)
	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, "https://cisagov/skeleton-generic.git", decodedRecord.Lineage.Skeleton.RemoteURL)
	require.Equal(testInstance, "1", decodedRecord.Version)
}
