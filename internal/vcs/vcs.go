// Package vcs looks up the git revision a style guide was generated from.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog/log"
)

// ShortHashLen is the length of an abbreviated commit hash
const ShortHashLen = 7

// Revision describes the commit checked out in a working tree
type Revision struct {
	CommitSHA string `json:"commit"`
	Branch    string `json:"branch,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Short returns the abbreviated hash, with a "+dirty" suffix for a modified
// tree
func (r *Revision) Short() string {
	if r == nil {
		return ""
	}
	sha := r.CommitSHA
	if len(sha) > ShortHashLen {
		sha = sha[:ShortHashLen]
	}
	if r.Dirty {
		sha += "+dirty"
	}
	return sha
}

// Lookup finds the repository containing path and returns its HEAD. A path
// outside any repository, or a repository without commits, yields nil and no
// error.
func Lookup(path string) (*Revision, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		log.Debug().Str("path", path).Msg("not a git repository")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repo: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	rev := &Revision{CommitSHA: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err == nil {
		status, err := worktree.Status()
		if err == nil {
			rev.Dirty = !status.IsClean()
		}
	}

	log.Debug().
		Str("commit", rev.Short()).
		Str("branch", rev.Branch).
		Msg("resolved revision")

	return rev, nil
}
