// Package gitmeta resolves best-effort git metadata for a scan root so
// baselines can be pinned to the commit they were taken at.
package gitmeta

import (
	git "github.com/go-git/go-git/v5"
)

// Head returns the commit hash and branch name for the repository containing
// root. Both come back empty when root is not inside a repository or HEAD is
// unborn; that is not an error, most scanned trees are not repositories.
func Head(root string) (commit, branch string) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", ""
	}
	ref, err := repo.Head()
	if err != nil {
		return "", ""
	}
	commit = ref.Hash().String()
	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}
	return commit, branch
}
