// Package gitrepo performs git repository operations for skeleton workflows.
//
// RepositoryManager shells out to git through execshell, and the remote URL
// helpers convert between textual remotes and structured owner/repository
// tuples.
package gitrepo
