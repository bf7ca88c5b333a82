package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FileAtRef returns the contents of path as committed at ref. The ref may be
// anything ResolveRevision accepts (branch, tag, hash, "main~2", ...).
func FileAtRef(file CommittedFile) (string, error) {
	r, err := gogit.PlainOpen(file.Repo.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %s: %w", file.Repo.Path, err)
	}
	hash, err := r.ResolveRevision(plumbing.Revision(file.Ref))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", file.Ref, err)
	}
	commit, err := r.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	f, err := commit.File(file.Path)
	if err != nil {
		return "", fmt.Errorf("no file %q at %q: %w", file.Path, file.Ref, err)
	}
	contents, err := f.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %q at %q: %w", file.Path, file.Ref, err)
	}
	return contents, nil
}
