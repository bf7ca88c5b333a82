package git

import "path/filepath"

// Repository identifies a repository for the session. The root path is the
// working-tree root; it is treated as opaque everywhere outside this package.
type Repository struct {
	Path string
}

// Name returns the base directory name of the repository.
func (r *Repository) Name() string {
	return filepath.Base(r.Path)
}

// RefKind discriminates the kinds of references the catalog reports.
type RefKind int

const (
	RefHead RefKind = iota // local branch
	RefTag
	RefRemoteHead
)

// Ref is a named or anonymous pointer to a commit. An empty Name means the
// ref is identified only by its hash.
type Ref struct {
	Kind RefKind
	Name string
	Hash string
}

// Author is a commit author. The synthetic "All" author used for the
// no-filter choice has an empty Email.
type Author struct {
	Name  string
	Email string
}

// CommittedFile describes one file at a specific ref, as handed to the
// open-committed-file command.
type CommittedFile struct {
	Repo *Repository
	Ref  string
	Path string
}
