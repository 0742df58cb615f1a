package clone

import "strings"

const (
	protectedAutomationConfigPathConstant = ".github/dependabot.yml"
	qualifiedNameSeparatorConstant        = "/"
)

// RepositoryCoordinates identifies a repository by owning organization and name.
type RepositoryCoordinates struct {
	Organization string
	Name         string
}

// QualifiedName renders the organization-qualified repository name.
func (coordinates RepositoryCoordinates) QualifiedName() string {
	return coordinates.Organization + qualifiedNameSeparatorConstant + coordinates.Name
}

// RewritePlan describes a repository rename applied across a file tree.
type RewritePlan struct {
	Source      RepositoryCoordinates
	Destination RepositoryCoordinates
}

// RewriteContent substitutes repository references inside a single file.
// The qualified "organization/name" form is replaced before the bare name so
// that already-substituted occurrences are not rewritten a second time.
// Substitution is purely textual with no word-boundary or binary awareness.
func RewriteContent(content string, plan RewritePlan) string {
	rewritten := strings.ReplaceAll(content, plan.Source.QualifiedName(), plan.Destination.QualifiedName())
	rewritten = strings.ReplaceAll(rewritten, plan.Source.Name, plan.Destination.Name)
	return rewritten
}

// RewriteTree applies the rewrite plan to every file in the tree and returns
// the rewritten tree keyed by the original paths.
func RewriteTree(fileContents map[string]string, plan RewritePlan) map[string]string {
	rewrittenContents := make(map[string]string, len(fileContents))
	for filePath, fileContent := range fileContents {
		rewrittenContents[filePath] = RewriteContent(fileContent, plan)
	}
	return rewrittenContents
}

// IsRewriteProtectedPath reports whether a tracked file is exempt from rewriting.
func IsRewriteProtectedPath(filePath string) bool {
	return filePath == protectedAutomationConfigPathConstant
}
