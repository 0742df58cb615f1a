package clone

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	lineageDirectoryConstant            = ".github"
	lineageFileNameConstant             = "lineage.yml"
	lineageSchemaVersionConstant        = "1"
	lineageRemoteURLTemplateConstant    = "https://%s/%s.git"
	lineageDirectoryPermissionsConstant = 0o755
	lineageFilePermissionsConstant      = 0o644
	lineageEncodingFailedTemplateConst  = "lineage record encoding failed: %w"
	lineageDirectoryFailedTemplateConst = "lineage directory creation failed: %w"
	lineageWriteFailedTemplateConstant  = "lineage record write failed: %w"
)

// LineageRecord declares the skeleton a repository was derived from.
// It is written once during the clone workflow and never mutated afterward.
type LineageRecord struct {
	Lineage LineageSection `yaml:"lineage"`
	Version string         `yaml:"version"`
}

// LineageSection nests the skeleton declaration under the lineage key.
type LineageSection struct {
	Skeleton SkeletonLineage `yaml:"skeleton"`
}

// SkeletonLineage records the remote URL of the originating skeleton.
type SkeletonLineage struct {
	RemoteURL string `yaml:"remote-url"`
}

// LineageFilePath returns the repository-relative path of the lineage record.
func LineageFilePath() string {
	return filepath.Join(lineageDirectoryConstant, lineageFileNameConstant)
}

// BuildLineageRecord constructs the lineage record for a skeleton source.
func BuildLineageRecord(source RepositoryCoordinates) LineageRecord {
	return LineageRecord{
		Lineage: LineageSection{
			Skeleton: SkeletonLineage{
				RemoteURL: fmt.Sprintf(lineageRemoteURLTemplateConstant, source.Organization, source.Name),
			},
		},
		Version: lineageSchemaVersionConstant,
	}
}

// WriteLineageRecord persists the lineage record inside the repository.
func WriteLineageRecord(fileSystem FileSystem, repositoryPath string, record LineageRecord) error {
	encodedRecord, encodingError := yaml.Marshal(record)
	if encodingError != nil {
		return fmt.Errorf(lineageEncodingFailedTemplateConst, encodingError)
	}

	lineageDirectory := filepath.Join(repositoryPath, lineageDirectoryConstant)
	directoryError := fileSystem.MkdirAll(lineageDirectory, lineageDirectoryPermissionsConstant)
	if directoryError != nil {
		return fmt.Errorf(lineageDirectoryFailedTemplateConst, directoryError)
	}

	lineageFilePath := filepath.Join(repositoryPath, LineageFilePath())
	writeError := fileSystem.WriteFile(lineageFilePath, encodedRecord, lineageFilePermissionsConstant)
	if writeError != nil {
		return fmt.Errorf(lineageWriteFailedTemplateConstant, writeError)
	}

	return nil
}
