package git

import (
	"fmt"
	"sort"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/yigger/githd/log"
)

// shortHashLen matches the abbreviated hash width git itself defaults to.
const shortHashLen = 7

// maxAuthors bounds how far back the log walk goes when collecting authors.
const maxAuthors = 100

// Catalog is the query surface the command layer consumes. The default
// implementation is go-git backed, but handlers only ever see this interface.
type Catalog interface {
	ListRefs(repo *Repository) ([]Ref, error)
	CurrentBranch(repo *Repository) (string, error)
	ListAuthors(repo *Repository) ([]Author, error)
	RepositoryForPath(path string) (*Repository, error)
	KnownRepositories() []*Repository
}

// Service implements Catalog on top of go-git.
type Service struct {
	mu    sync.Mutex
	known []*Repository
}

// NewService builds a Service whose known-repository set is resolved from the
// given paths. Paths that do not belong to a repository are skipped with a
// warning; duplicates collapse to one entry.
func NewService(paths ...string) *Service {
	s := &Service{}
	seen := make(map[string]bool)
	for _, p := range paths {
		repo, err := s.RepositoryForPath(p)
		if err != nil || repo == nil {
			log.WarningLog.Printf("skipping %s: not a git repository", p)
			continue
		}
		if !seen[repo.Path] {
			seen[repo.Path] = true
			s.known = append(s.known, repo)
		}
	}
	return s
}

// RepositoryForPath resolves path to the repository containing it, walking up
// to the nearest .git directory. It returns nil (and no error) when path is
// not inside a repository.
func (s *Service) RepositoryForPath(path string) (*Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if err == gogit.ErrRepositoryNotExists {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree for %s: %w", path, err)
	}
	return &Repository{Path: wt.Filesystem.Root()}, nil
}

// KnownRepositories returns the repositories resolved at startup.
func (s *Service) KnownRepositories() []*Repository {
	s.mu.Lock()
	defer s.mu.Unlock()
	repos := make([]*Repository, len(s.known))
	copy(repos, s.known)
	return repos
}

// ListRefs lists local branches, tags and remote branch heads, in that order,
// alphabetical within each kind.
func (s *Service) ListRefs(repo *Repository) ([]Ref, error) {
	r, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", repo.Path, err)
	}
	iter, err := r.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer iter.Close()

	var refs []Ref
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		short := name.Short()
		hash := shortHash(ref.Hash())
		switch {
		case name.IsBranch():
			refs = append(refs, Ref{Kind: RefHead, Name: short, Hash: hash})
		case name.IsTag():
			refs = append(refs, Ref{Kind: RefTag, Name: short, Hash: hash})
		case name.IsRemote():
			// origin/HEAD is an alias, not a browsable ref.
			if isRemoteHEAD(short) {
				return nil
			}
			refs = append(refs, Ref{Kind: RefRemoteHead, Name: short, Hash: hash})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk references: %w", err)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Kind != refs[j].Kind {
			return refs[i].Kind < refs[j].Kind
		}
		return refs[i].Name < refs[j].Name
	})
	return refs, nil
}

// CurrentBranch returns the checked-out branch name, or "" when HEAD is
// detached.
func (s *Service) CurrentBranch(repo *Repository) (string, error) {
	r, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %s: %w", repo.Path, err)
	}
	head, err := r.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			// Unborn HEAD (fresh repo).
			return "", nil
		}
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// ListAuthors walks the commit log from HEAD and collects distinct authors,
// newest first, deduplicated by email and capped at maxAuthors.
func (s *Service) ListAuthors(repo *Repository) ([]Author, error) {
	r, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", repo.Path, err)
	}
	iter, err := r.Log(&gogit.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read commit log: %w", err)
	}
	defer iter.Close()

	seen := make(map[string]bool)
	var authors []Author
	err = iter.ForEach(func(c *object.Commit) error {
		if !seen[c.Author.Email] {
			seen[c.Author.Email] = true
			authors = append(authors, Author{Name: c.Author.Name, Email: c.Author.Email})
		}
		if len(authors) >= maxAuthors {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commit log: %w", err)
	}
	return authors, nil
}

func shortHash(h plumbing.Hash) string {
	full := h.String()
	if len(full) > shortHashLen {
		return full[:shortHashLen]
	}
	return full
}

func isRemoteHEAD(short string) bool {
	// Short remote names look like "origin/main"; the HEAD alias is "origin/HEAD".
	for i := len(short) - 1; i >= 0; i-- {
		if short[i] == '/' {
			return short[i+1:] == "HEAD"
		}
	}
	return short == "HEAD"
}
